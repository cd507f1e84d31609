package memory

import (
	"testing"

	"wellrag/internal/domain"
)

func seed(t *testing.T) *Storage {
	t.Helper()
	s := NewStorage()
	if err := s.Init(3); err != nil {
		t.Fatal(err)
	}
	chunks := []domain.Chunk{
		{DocID: "d", Index: 0, Text: "x axis"},
		{DocID: "d", Index: 1, Text: "y axis"},
		{DocID: "d", Index: 2, Text: "z axis"},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	if err := s.Upsert(chunks, vectors); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSearchOrdering(t *testing.T) {
	s := seed(t)
	res, err := s.Search([]float64{0.9, 0.4, 0.1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("got %d results", len(res))
	}
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Fatalf("results not in descending score order: %v", res)
		}
	}
	if res[0].Chunk.Index != 0 {
		t.Fatalf("best match should be chunk 0, got %d", res[0].Chunk.Index)
	}
}

func TestSearchTopKClamped(t *testing.T) {
	s := seed(t)
	res, err := s.Search([]float64{1, 0, 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("got %d results, want all 3", len(res))
	}
}

func TestSearchStableTies(t *testing.T) {
	s := seed(t)
	// Equidistant query; insertion order must decide
	res, err := s.Search([]float64{1, 1, 1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range res {
		if r.Chunk.Index != i {
			t.Fatalf("tie order broken: result %d is chunk %d", i, r.Chunk.Index)
		}
	}
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := NewStorage()
	if err := s.Init(3); err != nil {
		t.Fatal(err)
	}
	err := s.Upsert([]domain.Chunk{{}}, [][]float64{{1, 0}})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestInitInvalidDimension(t *testing.T) {
	if err := NewStorage().Init(0); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestClear(t *testing.T) {
	s := seed(t)
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	res, err := s.Search([]float64{1, 0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Fatalf("cleared store returned %d results", len(res))
	}
}
