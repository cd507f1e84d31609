package vectorstore

import "wellrag/internal/domain"

// Storage persists chunk vectors and supports similarity search. Search
// returns at most topK results ordered by descending score, ties broken by
// the order chunks were upserted in.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}
