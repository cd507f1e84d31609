package vectorstore

import "wellrag/internal/domain"

// Multi fans writes out to several stores, letting an index build land in a
// local directory and a shared remote store in one pass. Searches go to the
// first store only.
type Multi struct {
	stores []Storage
}

// NewMulti wraps the given stores. The first one is the search target.
func NewMulti(stores ...Storage) *Multi {
	return &Multi{stores: stores}
}

func (m *Multi) Init(dimension int) error {
	for _, s := range m.stores {
		if err := s.Init(dimension); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	for _, s := range m.stores {
		if err := s.Upsert(chunks, vectors); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	return m.stores[0].Search(vector, topK)
}

func (m *Multi) Clear() error {
	for _, s := range m.stores {
		if err := s.Clear(); err != nil {
			return err
		}
	}
	return nil
}
