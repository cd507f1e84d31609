package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMarkdownLayout(t *testing.T) {
	questions := []string{
		"Please provide **Wellhead pressure bar**.",
		"Please provide **Flow rate m3 h**.",
	}
	doc := Markdown("Well: ACME-12.", 250, questions)
	if !strings.HasPrefix(doc, "# Completion Report Summary (≤250 words)\n\n") {
		t.Fatalf("bad title: %q", doc)
	}
	if !strings.Contains(doc, "Well: ACME-12.\n") {
		t.Fatal("summary body missing")
	}
	if !strings.Contains(doc, "## Missing Inputs for Nodal Analysis\n") {
		t.Fatal("missing-inputs section absent")
	}
	// Bullets carry the user-facing questions, not raw input keys
	if !strings.Contains(doc, "- Please provide **Wellhead pressure bar**.\n- Please provide **Flow rate m3 h**.\n") {
		t.Fatalf("bullets missing or out of order: %q", doc)
	}
	if strings.Contains(doc, "- wellhead_pressure_bar") {
		t.Fatal("raw input key leaked into the bullets")
	}
}

func TestMarkdownWithoutMissingInputs(t *testing.T) {
	doc := Markdown("All good.", 100, nil)
	if strings.Contains(doc, "Missing Inputs") {
		t.Fatal("missing-inputs section must be omitted when nothing is missing")
	}
}

func TestWriteMarkdown(t *testing.T) {
	questions := []string{"Please provide **Flow rate m3 h**."}
	path := filepath.Join(t.TempDir(), "summary.md")
	if err := WriteMarkdown(path, "Body.", 200, questions); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != Markdown("Body.", 200, questions) {
		t.Fatal("file content differs from rendered document")
	}
}

func TestWritePDF(t *testing.T) {
	md := Markdown("Summary with q ≈ 85.5 m³/h and 104 °C.", 250, []string{"Please provide **Fluid viscosity cp**."})
	path := filepath.Join(t.TempDir(), "summary.pdf")
	if err := WritePDF(path, md); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty PDF written")
	}
}
