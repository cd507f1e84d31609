package export

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders a constrained Markdown subset to an A4 PDF: "# " lines
// become the 18pt title, "## " lines 12pt bold subtitles, everything else
// flows as 11pt body text. Blank lines become vertical spacers.
func WritePDF(path, markdown string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 20, 18)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			doc.SetFont("Helvetica", "B", 18)
			doc.MultiCell(0, 9, tr(strings.TrimPrefix(line, "# ")), "", "L", false)
			doc.Ln(2)
		case strings.HasPrefix(line, "## "):
			doc.Ln(2)
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 7, tr(strings.TrimPrefix(line, "## ")), "", "L", false)
			doc.Ln(1)
		case strings.TrimSpace(line) == "":
			doc.Ln(4)
		default:
			doc.SetFont("Helvetica", "", 11)
			doc.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
