package export

import (
	"fmt"
	"os"
	"strings"
)

// Markdown renders the summary document: a title carrying the word limit,
// the summary body, and an optional missing-inputs section with one bullet
// per outstanding nodal question, phrased for the reader.
func Markdown(summary string, wordLimit int, questions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Completion Report Summary (≤%d words)\n\n", wordLimit)
	b.WriteString(summary)
	b.WriteString("\n")
	if len(questions) > 0 {
		b.WriteString("\n## Missing Inputs for Nodal Analysis\n\n")
		for _, q := range questions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	return b.String()
}

// WriteMarkdown writes the rendered document to path.
func WriteMarkdown(path, summary string, wordLimit int, questions []string) error {
	doc := Markdown(summary, wordLimit, questions)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
