package tfidf

import (
	"math"
	"testing"
)

func TestPrepareEmptyCorpus(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare(nil); err == nil {
		t.Fatal("expected error for empty corpus")
	}
}

func TestEmbedBeforePrepare(t *testing.T) {
	e := NewEmbedder()
	if _, err := e.Embed("anything"); err == nil {
		t.Fatal("expected error embedding before prepare")
	}
}

func TestBigramsInVocabulary(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare([]string{"drill pipe", "drill bit"}); err != nil {
		t.Fatal(err)
	}
	// Unigrams bit, drill, pipe plus bigrams "drill bit", "drill pipe"
	if e.Dimension() != 5 {
		t.Fatalf("expected dimension 5, got %d", e.Dimension())
	}
}

func TestVocabularyCap(t *testing.T) {
	e := NewEmbedderWithFeatures(3)
	if err := e.Prepare([]string{"drill pipe", "drill bit"}); err != nil {
		t.Fatal(err)
	}
	if e.Dimension() != 3 {
		t.Fatalf("expected capped dimension 3, got %d", e.Dimension())
	}
	// drill appears in both documents and must survive the cap
	vec, err := e.Embed("drill")
	if err != nil {
		t.Fatal(err)
	}
	if norm(vec) == 0 {
		t.Fatal("most frequent term was evicted from the vocabulary")
	}
}

func TestEmbedNormalized(t *testing.T) {
	e := NewEmbedder()
	corpus := []string{
		"ran completion string with packer",
		"pressure tested annulus and tubing",
		"logged well with MTI tool",
	}
	if err := e.Prepare(corpus); err != nil {
		t.Fatal(err)
	}
	vec, err := e.Embed("pressure tested tubing")
	if err != nil {
		t.Fatal(err)
	}
	if n := norm(vec); math.Abs(n-1.0) > 1e-9 {
		t.Fatalf("expected unit norm, got %g", n)
	}
}

func TestEmbedOutOfVocabulary(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare([]string{"packer set at depth"}); err != nil {
		t.Fatal(err)
	}
	vec, err := e.Embed("zzz qqq")
	if err != nil {
		t.Fatal(err)
	}
	if norm(vec) != 0 {
		t.Fatal("out-of-vocabulary text should embed to the zero vector")
	}
}

func TestStopwordsExcluded(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare([]string{"the packer is in the well"}); err != nil {
		t.Fatal(err)
	}
	vec, err := e.Embed("the the the")
	if err != nil {
		t.Fatal(err)
	}
	if norm(vec) != 0 {
		t.Fatal("stopword-only text should embed to the zero vector")
	}
}

func norm(vec []float64) float64 {
	s := 0.0
	for _, v := range vec {
		s += v * v
	}
	return math.Sqrt(s)
}
