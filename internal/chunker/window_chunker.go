package chunker

import (
	"unicode/utf8"

	"wellrag/internal/domain"
)

// WindowChunker splits text into fixed-size character windows that overlap
// by a configured amount. The window slides forward by size-overlap each
// step; the final window is clamped to the end of the text, so joining the
// windows with overlaps removed reconstructs the input exactly.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker creates a chunker with the given window size and overlap.
// Non-positive sizes fall back to 1500/300; an overlap that is negative or
// not smaller than the size is clamped, which also rules out a stuck window.
func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = 1500
		overlap = 300
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Chunk splits a document into ordered overlapping windows. Empty content
// yields no chunks.
func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	spans := c.Split(document.Content)
	chunks := make([]domain.Chunk, 0, len(spans))
	for i, sp := range spans {
		chunks = append(chunks, domain.Chunk{
			DocID:  document.ID,
			Index:  i,
			Start:  sp.Start,
			End:    sp.End,
			Page:   document.Page,
			Source: document.Path,
			Text:   sp.Text,
		})
	}
	return chunks, nil
}

// Span is one window over the input text.
type Span struct {
	Start int
	End   int
	Text  string
}

// Split produces the window spans for a piece of text. For text of length L
// bytes with size C and overlap O it emits ceil((L-O)/(C-O)) spans when
// L > O and a single span otherwise. Window boundaries snap back to rune
// starts, so every span is valid UTF-8 and survives a JSON round trip
// byte-for-byte; offsets remain byte offsets into the input.
func (c *WindowChunker) Split(text string) []Span {
	if len(text) == 0 {
		return nil
	}
	var spans []Span
	start := 0
	for {
		end := start + c.size
		if end >= len(text) {
			spans = append(spans, Span{Start: start, End: len(text), Text: text[start:]})
			return spans
		}
		end = runeStart(text, end)
		if end <= start {
			// Window narrower than the rune at start; take the whole rune.
			_, n := utf8.DecodeRuneInString(text[start:])
			end = start + n
			if end >= len(text) {
				spans = append(spans, Span{Start: start, End: len(text), Text: text[start:]})
				return spans
			}
		}
		spans = append(spans, Span{Start: start, End: end, Text: text[start:end]})
		next := runeStart(text, end-c.overlap)
		if next <= start {
			next = end
		}
		start = next
	}
}

// runeStart walks i back to the start of the rune containing byte i.
func runeStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// Size reports the configured window size.
func (c *WindowChunker) Size() int { return c.size }

// Overlap reports the configured window overlap.
func (c *WindowChunker) Overlap() int { return c.overlap }
