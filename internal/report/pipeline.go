package report

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"wellrag/internal/chunker"
	"wellrag/internal/domain"
	"wellrag/internal/embedding/tfidf"
	"wellrag/internal/export"
	"wellrag/internal/fields"
	"wellrag/internal/nodal"
	"wellrag/internal/pdftext"
	"wellrag/internal/retriever"
	"wellrag/internal/summary"
	"wellrag/internal/vectorstore/memory"
)

// Default chunk geometry for the single-report in-memory index.
const (
	defaultChunkSize    = 1500
	defaultChunkOverlap = 300
)

// Options configures one offline report run. Zero ChunkSize and
// ChunkOverlap select the defaults.
type Options struct {
	PDFPath      string
	OutDir       string
	WordLimit    int
	NodalJSON    string
	ExportPDF    bool
	ChunkSize    int
	ChunkOverlap int
}

// inputsMeta echoes the run parameters into the JSON output.
type inputsMeta struct {
	PDF       string `json:"pdf"`
	WordLimit int    `json:"word_limit"`
}

// Output is the full machine-readable result of a report run, written to
// report_outputs.json alongside the Markdown summary.
type Output struct {
	Timestamp           string        `json:"timestamp"`
	Inputs              inputsMeta    `json:"inputs"`
	DataExtracted       domain.Record `json:"data_extracted"`
	ValidationIssues    []string      `json:"validation_issues"`
	NodalInputsRequired nodal.Inputs  `json:"nodal_inputs_required"`
	NodalStatus         nodal.Result  `json:"nodal_status"`
	QuestionsForUser    []string      `json:"questions_for_user"`
	SummaryWords        int           `json:"summary_words"`
	Summary             string        `json:"summary"`
}

// Run extracts the PDF, builds the outputs and writes the three artifacts
// (JSON, Markdown, optional PDF) into opts.OutDir.
func Run(opts Options) (*Output, error) {
	// A nonexistent input path is one of the two user-fatal conditions;
	// everything past this point degrades instead of failing.
	if _, err := os.Stat(opts.PDFPath); err != nil {
		return nil, fmt.Errorf("pdf not found: %w", err)
	}
	res := pdftext.Extract(opts.PDFPath)
	if res.Status != pdftext.Primary {
		log.Printf("pdf extraction for %s: %s", opts.PDFPath, res.Status)
	}
	text := pdftext.CleanSpaces(res.Text)

	out, err := RunText(text, opts)
	if err != nil {
		return nil, err
	}
	if err := writeArtifacts(opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunText runs the full pipeline over already-extracted report text. Split
// out from Run so the pipeline is exercisable without PDF fixtures.
func RunText(text string, opts Options) (*Output, error) {
	size, overlap := opts.ChunkSize, opts.ChunkOverlap
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap <= 0 {
		overlap = defaultChunkOverlap
	}
	rt := buildRetriever(text, opts.PDFPath, size, overlap)

	rec := fields.Parse(text)
	issues := fields.Validate(rec)
	if issues == nil {
		issues = []string{}
	}

	inputs := nodal.DefaultInputs(rec)
	if opts.NodalJSON != "" {
		if err := inputs.MergeJSONFile(opts.NodalJSON); err != nil {
			return nil, err
		}
	}
	nres := nodal.Run(inputs)

	questions := make([]string, 0, len(nres.MissingInputs))
	for _, k := range nres.MissingInputs {
		questions = append(questions, fmt.Sprintf("Please provide **%s**.", questionLabel(k)))
	}

	sum := summary.Generate(rec, rt, opts.WordLimit)
	sum = summary.AppendOperatingPoint(sum, nres, opts.WordLimit)

	return &Output{
		Timestamp:           time.Now().Format(time.RFC3339),
		Inputs:              inputsMeta{PDF: filepath.Base(opts.PDFPath), WordLimit: opts.WordLimit},
		DataExtracted:       rec,
		ValidationIssues:    issues,
		NodalInputsRequired: inputs,
		NodalStatus:         nres,
		QuestionsForUser:    questions,
		SummaryWords:        summary.CountWords(sum),
		Summary:             sum,
	}, nil
}

// buildRetriever indexes the report text in memory with TF-IDF vectors.
// Retrieval is advisory for the offline summary, so any failure degrades to
// a nil retriever instead of failing the run.
func buildRetriever(text, path string, size, overlap int) *retriever.Retriever {
	ck := chunker.NewWindowChunker(size, overlap)
	chunks, err := ck.Chunk(domain.Document{ID: path, Path: path, Content: text})
	if err != nil {
		log.Printf("chunking failed, summary will skip supporting sentences: %v", err)
		return nil
	}
	rt, err := retriever.Build(tfidf.NewEmbedder(), memory.NewStorage(), chunks)
	if err != nil {
		log.Printf("retriever build failed, summary will skip supporting sentences: %v", err)
		return nil
	}
	return rt
}

func writeArtifacts(opts Options, out *Output) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outputs: %w", err)
	}
	jsonPath := filepath.Join(opts.OutDir, "report_outputs.json")
	if err := os.WriteFile(jsonPath, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	mdPath := filepath.Join(opts.OutDir, "report_summary.md")
	if err := export.WriteMarkdown(mdPath, out.Summary, opts.WordLimit, out.QuestionsForUser); err != nil {
		return err
	}

	if opts.ExportPDF {
		pdfPath := filepath.Join(opts.OutDir, "report_summary.pdf")
		md := export.Markdown(out.Summary, opts.WordLimit, out.QuestionsForUser)
		if err := export.WritePDF(pdfPath, md); err != nil {
			log.Printf("pdf export skipped: %v", err)
		}
	}
	return nil
}

// questionLabel turns a snake_case input key into a sentence-style label:
// underscores become spaces, everything lowercases, first letter uppercases.
func questionLabel(key string) string {
	s := strings.ToLower(strings.ReplaceAll(key, "_", " "))
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
