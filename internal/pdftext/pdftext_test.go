package pdftext

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractMissingFile(t *testing.T) {
	res := Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	if res.Status != Empty {
		t.Fatalf("status = %v, want Empty", res.Status)
	}
	if res.Text != "" {
		t.Fatalf("text = %q, want empty", res.Text)
	}
}

func TestExtractGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := Extract(path)
	if res.Status != Empty || res.Text != "" {
		t.Fatalf("garbage file should yield Empty, got %v %q", res.Status, res.Text)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Primary, "primary"},
		{Fallback, "fallback"},
		{Empty, "empty"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.s, got, tc.want)
		}
	}
}

func TestCleanSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a  b\t\tc", "a b c"},
		{"line1\n\n\n\nline2", "line1\n\nline2"},
		{"  padded  ", "padded"},
		{"a \t b\n\n\nc", "a b\n\nc"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := CleanSpaces(tc.in); got != tc.want {
			t.Errorf("CleanSpaces(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
