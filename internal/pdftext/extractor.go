package pdftext

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"wellrag/internal/domain"
)

// Status tells which extraction strategy produced the text.
type Status int

const (
	// Primary means the page-by-page extractor succeeded.
	Primary Status = iota
	// Fallback means the whole-document extractor was used instead.
	Fallback
	// Empty means both strategies failed; Text is "". Callers must treat
	// this as a valid low-confidence result, not an error.
	Empty
)

func (s Status) String() string {
	switch s {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return "empty"
	}
}

// ExtractionResult carries the extracted text together with the strategy
// that produced it, so callers and tests can tell "succeeded via fallback"
// from "fully failed".
type ExtractionResult struct {
	Status Status
	Text   string
}

// Extract pulls raw text out of a PDF. It tries page-by-page extraction
// first, substituting an empty string for any page that fails; if the
// concatenated result is blank it falls back to whole-document extraction.
// Extract never returns an error: if both strategies fail the result is
// Empty with "" text.
func Extract(path string) ExtractionResult {
	if text, err := extractPages(path); err == nil && strings.TrimSpace(text) != "" {
		return ExtractionResult{Status: Primary, Text: text}
	}
	if text, err := extractWhole(path); err == nil && strings.TrimSpace(text) != "" {
		return ExtractionResult{Status: Fallback, Text: text}
	}
	return ExtractionResult{Status: Empty, Text: ""}
}

// extractPages reads every page with ledongthuc/pdf, keeping page markers so
// downstream consumers can still locate content. Pages that fail to decode
// contribute an empty string instead of aborting the document.
func extractPages(path string) (text string, err error) {
	// ledongthuc/pdf panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf page extraction panicked: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		pageText := ""
		page := r.Page(i)
		if !page.V.IsNull() {
			if t, perr := page.GetPlainText(nil); perr == nil {
				pageText = t
			}
		}
		b.WriteString(fmt.Sprintf("\n\n=== Page %d ===\n%s", i, pageText))
	}
	return b.String(), nil
}

// extractWhole renders the full document text through MuPDF.
func extractWhole(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf document extraction panicked: %v", r)
		}
	}()

	doc, err := fitz.New(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		t, perr := doc.Text(i)
		if perr != nil {
			continue
		}
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// LoadPages reads a PDF page by page for indexing, keeping the page number
// and source path as metadata on each document.
func LoadPages(path string) ([]domain.Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	docs := make([]domain.Document, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			text = ""
		}
		docs = append(docs, domain.Document{
			ID:      fmt.Sprintf("%s#%d", path, i+1),
			Path:    path,
			Page:    i + 1,
			Content: text,
		})
	}
	return docs, nil
}
