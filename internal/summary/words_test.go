package summary

import (
	"strings"
	"testing"
)

func TestEnforceWordLimit(t *testing.T) {
	in := "one two three four five"
	got := EnforceWordLimit(in, 3)
	if got != "one two three" {
		t.Fatalf("got %q", got)
	}
	// Idempotent
	if again := EnforceWordLimit(got, 3); again != got {
		t.Fatalf("not idempotent: %q", again)
	}
	if EnforceWordLimit(in, 100) != in {
		t.Fatal("text under the limit must pass through unchanged")
	}
	if EnforceWordLimit(in, 0) != "" {
		t.Fatal("zero limit must yield empty text")
	}
	if EnforceWordLimit(in, -5) != "" {
		t.Fatal("negative limit must yield empty text")
	}
}

func TestEnforceWordLimitNormalizesWhitespace(t *testing.T) {
	got := EnforceWordLimit("a  b\t c\nd", 10)
	if got != "a b c d" {
		t.Fatalf("got %q", got)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two  three", 3},
		{"q ≈ 85.5 m³/h", 4},
	}
	for _, tc := range tests {
		if got := CountWords(tc.in); got != tc.want {
			t.Errorf("CountWords(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFirstSentence(t *testing.T) {
	got := FirstSentence("Rig moved on location. Spudded the well.")
	if got != "Rig moved on location." {
		t.Fatalf("got %q", got)
	}
	if FirstSentence("  no terminator here  ") != "no terminator here" {
		t.Fatal("text without a boundary must come back trimmed")
	}
}

func TestExtractiveSummarize(t *testing.T) {
	text := strings.Join([]string{
		"The packer was set at depth.",
		"Crew change occurred at noon.",
		"The packer held pressure after the packer test.",
		"Weather was calm.",
	}, " ")
	s := NewExtractive()
	out := s.Summarize(text, 2)
	if out == "" {
		t.Fatal("empty summary")
	}
	if n := len(sentenceRe.FindAllString(out, -1)); n > 2 {
		t.Fatalf("summary has %d sentences, want at most 2", n)
	}
	if !strings.Contains(out, "packer") {
		t.Fatalf("dominant topic missing from summary: %q", out)
	}
}
