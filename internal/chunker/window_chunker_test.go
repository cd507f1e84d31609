package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"wellrag/internal/domain"
)

func TestSplitEmptyText(t *testing.T) {
	c := NewWindowChunker(10, 2)
	if spans := c.Split(""); spans != nil {
		t.Fatalf("expected no spans for empty text, got %d", len(spans))
	}
}

func TestSplitShortText(t *testing.T) {
	c := NewWindowChunker(100, 20)
	spans := c.Split("short")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 5 || spans[0].Text != "short" {
		t.Fatalf("unexpected span: %+v", spans[0])
	}
}

func TestSplitCount(t *testing.T) {
	tests := []struct {
		length, size, overlap, want int
	}{
		{100, 30, 10, 5}, // ceil((100-10)/20)
		{90, 30, 10, 4},  // last window lands exactly on the end
		{91, 30, 10, 5},
		{30, 30, 10, 1},
		{31, 30, 10, 2},
		{1500, 1500, 300, 1},
		{1501, 1500, 300, 2},
	}
	for _, tc := range tests {
		c := NewWindowChunker(tc.size, tc.overlap)
		text := strings.Repeat("x", tc.length)
		got := len(c.Split(text))
		if got != tc.want {
			t.Errorf("length=%d size=%d overlap=%d: got %d spans, want %d",
				tc.length, tc.size, tc.overlap, got, tc.want)
		}
	}
}

func TestSplitReconstruction(t *testing.T) {
	text := strings.Repeat("abcdefghij", 37) // 370 chars
	c := NewWindowChunker(80, 15)
	spans := c.Split(text)

	var b strings.Builder
	for i, sp := range spans {
		if i == 0 {
			b.WriteString(sp.Text)
			continue
		}
		b.WriteString(sp.Text[c.Overlap():])
	}
	if b.String() != text {
		t.Fatal("joining spans with overlaps removed did not reconstruct the input")
	}

	for i := 1; i < len(spans); i++ {
		if spans[i].Start != spans[i-1].End-c.Overlap() {
			t.Fatalf("span %d starts at %d, want %d", i, spans[i].Start, spans[i-1].End-c.Overlap())
		}
	}
}

func TestSplitKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("x", 9) + "°C at 104, q ≈ 85.5 m³/h"
	c := NewWindowChunker(10, 2)
	spans := c.Split(text)

	for i, sp := range spans {
		if !utf8.ValidString(sp.Text) {
			t.Errorf("span %d is not valid UTF-8: %q", i, sp.Text)
		}
		if text[sp.Start:sp.End] != sp.Text {
			t.Errorf("span %d text does not match its offsets", i)
		}
	}
	if spans[0].Start != 0 || spans[len(spans)-1].End != len(text) {
		t.Fatal("spans do not cover the input")
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start > spans[i-1].End {
			t.Fatalf("gap between spans %d and %d", i-1, i)
		}
		if spans[i].End <= spans[i-1].End {
			t.Fatalf("span %d does not advance", i)
		}
	}
}

func TestOverlapClamp(t *testing.T) {
	c := NewWindowChunker(5, 10)
	if c.Overlap() != 4 {
		t.Fatalf("overlap not clamped below size: %d", c.Overlap())
	}
	c = NewWindowChunker(5, -1)
	if c.Overlap() != 0 {
		t.Fatalf("negative overlap not clamped: %d", c.Overlap())
	}
	c = NewWindowChunker(0, 0)
	if c.Size() != 1500 || c.Overlap() != 300 {
		t.Fatalf("defaults not applied: size=%d overlap=%d", c.Size(), c.Overlap())
	}
}

func TestChunkMetadata(t *testing.T) {
	c := NewWindowChunker(10, 2)
	doc := domain.Document{ID: "r.pdf#3", Path: "r.pdf", Page: 3, Content: strings.Repeat("z", 25)}
	chunks, err := c.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if ch.DocID != doc.ID || ch.Source != doc.Path || ch.Page != doc.Page {
			t.Errorf("chunk %d lost document metadata: %+v", i, ch)
		}
	}
}
