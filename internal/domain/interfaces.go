package domain

// Document is a single unit of source text, usually one PDF page.
type Document struct {
	ID      string
	Path    string
	Page    int
	Content string
}

// Chunk is an overlapping character window over a document, the unit of
// retrieval. Start and End are byte offsets into the source text; order is
// significant for reconstructing context.
type Chunk struct {
	DocID  string
	Index  int
	Start  int
	End    int
	Page   int
	Source string
	Text   string
}

// SearchResult is a matching chunk with a relevance score. Scores from
// different embedders live on different scales and must not be compared
// across embedder types.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Citation links a summary to the source page a retrieved chunk came from.
type Citation struct {
	File string `json:"file"`
	Page int    `json:"page"`
}

// SummaryOutput is a word-limited narrative plus the citations of the chunks
// that produced it.
type SummaryOutput struct {
	Summary   string     `json:"summary"`
	WordCount int        `json:"word_count"`
	Citations []Citation `json:"citations"`
}

// Record is the flat field mapping produced by report field extraction.
// Values are strings or bools; every known field is always present, with ""
// or false meaning "not found".
type Record map[string]any

// String returns the string value of a field, or "" if absent or non-string.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the bool value of a field, or false if absent or non-bool.
func (r Record) Bool(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
