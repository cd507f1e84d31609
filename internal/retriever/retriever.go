package retriever

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"wellrag/internal/domain"
	"wellrag/internal/embedding"
	"wellrag/internal/vectorstore"
)

// Retriever is the one seam between embedders and vector stores: Build
// indexes chunks, Query answers top-k nearest-neighbor searches. Both
// retrieval strategies (TF-IDF and sentence embeddings) sit behind it, so
// summarization and preview stay strategy-agnostic.
type Retriever struct {
	emb    embedding.Embedder
	store  vectorstore.Storage
	chunks []domain.Chunk
	empty  bool
}

// Build prepares the embedder over the chunk corpus, embeds every chunk and
// upserts it into the store. Building with zero chunks is valid and yields a
// retriever whose Query always returns an empty result.
func Build(emb embedding.Embedder, store vectorstore.Storage, chunks []domain.Chunk) (*Retriever, error) {
	if len(chunks) == 0 {
		return &Retriever{emb: emb, store: store, empty: true}, nil
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	if err := emb.Prepare(texts); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}

	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vec, err := emb.Embed(chunks[i].Text)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		vectors[i] = vec
	}
	// Remote embedders learn their dimension on the first embed, so Init
	// comes after embedding.
	if err := store.Init(emb.Dimension()); err != nil {
		return nil, err
	}
	if err := store.Upsert(chunks, vectors); err != nil {
		return nil, err
	}
	return &Retriever{emb: emb, store: store, chunks: chunks}, nil
}

// Open wraps an already-populated store (an index built in an earlier run)
// with the embedder that was used to build it. Passing the stored chunks
// keeps the lexical fallback available; nil disables it.
func Open(emb embedding.Embedder, store vectorstore.Storage, chunks []domain.Chunk) *Retriever {
	return &Retriever{emb: emb, store: store, chunks: chunks, empty: len(chunks) == 0 && store == nil}
}

// Query embeds the query text and returns at most k hits, highest score
// first. An empty index yields an empty result for any query and any k.
func (r *Retriever) Query(text string, k int) ([]domain.SearchResult, error) {
	if r == nil || r.empty {
		return nil, nil
	}
	vec, err := r.emb.Embed(text)
	if err != nil {
		return nil, err
	}
	return r.store.Search(vec, k)
}

// QueryWithFallback behaves like Query but falls back to lexical overlap
// scoring when the embedded query carries no signal (for example a TF-IDF
// query made only of out-of-vocabulary words). Used by the interactive
// preview so typed queries always land somewhere.
func (r *Retriever) QueryWithFallback(text string, k int) ([]domain.SearchResult, error) {
	if r == nil || r.empty {
		return nil, nil
	}
	vec, err := r.emb.Embed(text)
	if err != nil {
		return nil, err
	}
	if isZero(vec) && len(r.chunks) > 0 {
		return r.lexicalSearch(text, k), nil
	}
	res, err := r.store.Search(vec, k)
	if err != nil {
		return nil, err
	}
	if allZeroScores(res) && len(r.chunks) > 0 {
		return r.lexicalSearch(text, k), nil
	}
	return res, nil
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func allZeroScores(res []domain.SearchResult) bool {
	for _, r := range res {
		if r.Score > 1e-9 {
			return false
		}
	}
	return true
}

var unicodeWordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// lexicalSearch ranks chunks by the Ochiai coefficient of token overlap
// with the query.
func (r *Retriever) lexicalSearch(query string, topK int) []domain.SearchResult {
	qset := toTokenSet(query)
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(r.chunks))
	for i, ch := range r.chunks {
		scores[i] = pair{i, overlapOchiai(qset, ch.Text)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK <= 0 {
		topK = 5
	}
	if topK > len(scores) {
		topK = len(scores)
	}
	out := make([]domain.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		p := scores[i]
		out = append(out, domain.SearchResult{Chunk: r.chunks[p.idx], Score: p.score})
	}
	return out
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// overlapOchiai computes |A∩B| / sqrt(|A||B|) over distinct tokens.
func overlapOchiai(qset map[string]struct{}, text string) float64 {
	stoks := unicodeWordRe.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(stoks))
	inter := 0
	for _, t := range stoks {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := qset[t]; ok {
			inter++
		}
	}
	if len(qset) == 0 || len(seen) == 0 {
		return 0
	}
	qa := float64(len(qset))
	ba := float64(len(seen))
	return float64(inter) / math.Sqrt(qa*ba)
}
