package summary

import (
	"context"
	"strings"
	"testing"

	"wellrag/internal/domain"
	"wellrag/internal/nodal"
)

func TestGenerateHighlights(t *testing.T) {
	rec := domain.Record{
		"well_name":     "ACME-12",
		"operation":     "Workover",
		"esp_installed": true,
		"hse_incidents": "None",
	}
	got := Generate(rec, nil, 250)
	for _, want := range []string{
		"Well: ACME-12.",
		"Operation: Workover.",
		"ESP installed.",
		"HSE: No incidents reported; drills/toolboxes conducted.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "Duration:") {
		t.Error("absent field produced a highlight")
	}
}

func TestGenerateRespectsWordLimit(t *testing.T) {
	rec := domain.Record{
		"well_name": "ACME-12",
		"operation": "Workover with a very long operation description spanning many words",
	}
	got := Generate(rec, nil, 5)
	if n := CountWords(got); n > 5 {
		t.Fatalf("summary has %d words, want at most 5", n)
	}
}

func TestGenerateEmptyRecord(t *testing.T) {
	if got := Generate(domain.Record{}, nil, 250); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestAppendOperatingPoint(t *testing.T) {
	res := nodal.Result{
		Status: nodal.StatusOK,
		Results: &nodal.OperatingPoint{
			QM3H: 85.5, WHPBar: 12, TubingIDIn: 3.958,
		},
	}
	got := AppendOperatingPoint("Well: ACME-12.", res, 250)
	want := "Nodal operating point (stub): q ≈ 85.5 m³/h at WHP ≈ 12 bar (Tubing ID 3.958 in)."
	if !strings.Contains(got, want) {
		t.Fatalf("got %q", got)
	}
}

func TestAppendOperatingPointPending(t *testing.T) {
	res := nodal.Result{Status: nodal.StatusPending}
	if got := AppendOperatingPoint("unchanged", res, 250); got != "unchanged" {
		t.Fatalf("pending result altered summary: %q", got)
	}
}

func TestChainFallbackAndCitations(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	chain := NewChain(ChainConfig{})

	hits := []domain.SearchResult{
		{Chunk: domain.Chunk{Source: "a.pdf", Page: 1, Text: "The packer was set. The packer held."}, Score: 0.9},
		{Chunk: domain.Chunk{Source: "a.pdf", Page: 1, Text: "More detail on the packer."}, Score: 0.8},
		{Chunk: domain.Chunk{Source: "b.pdf", Page: 4, Text: "Logging completed without issue."}, Score: 0.7},
	}
	out, err := chain.Summarize(context.Background(), hits, "packer", 50)
	if err != nil {
		t.Fatal(err)
	}
	if out.Summary == "" {
		t.Fatal("fallback produced no summary")
	}
	if out.WordCount != CountWords(out.Summary) || out.WordCount > 50 {
		t.Fatalf("word count %d inconsistent with summary %q", out.WordCount, out.Summary)
	}
	want := []domain.Citation{{File: "a.pdf", Page: 1}, {File: "b.pdf", Page: 4}}
	if len(out.Citations) != len(want) {
		t.Fatalf("citations = %v, want %v", out.Citations, want)
	}
	for i := range want {
		if out.Citations[i] != want[i] {
			t.Errorf("citation %d = %v, want %v", i, out.Citations[i], want[i])
		}
	}
}

func TestChainNoHits(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	chain := NewChain(ChainConfig{})
	out, err := chain.Summarize(context.Background(), nil, "", 100)
	if err != nil {
		t.Fatal(err)
	}
	if out.Summary != "" || len(out.Citations) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}
