package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"wellrag/internal/report"
)

func main() {
	_ = godotenv.Load()

	var (
		pdfPath   string
		outDir    string
		wordLimit int
		nodalJSON string
		exportPDF bool
	)
	flag.StringVar(&pdfPath, "pdf", "", "Path to the completion/workover report PDF (required)")
	flag.StringVar(&outDir, "outdir", "outputs", "Directory for generated artifacts")
	flag.IntVar(&wordLimit, "word-limit", 250, "Maximum words in the summary")
	flag.StringVar(&nodalJSON, "nodal-json", "", "Path to a JSON file with nodal analysis inputs (optional)")
	flag.BoolVar(&exportPDF, "export-pdf", false, "Also render the summary as a PDF")
	flag.Parse()

	if pdfPath == "" {
		fmt.Println("Usage: wellrag --pdf report.pdf [--outdir outputs] [--word-limit 250] [--nodal-json inputs.json] [--export-pdf]")
		os.Exit(1)
	}

	out, err := report.Run(report.Options{
		PDFPath:   pdfPath,
		OutDir:    outDir,
		WordLimit: wordLimit,
		NodalJSON: nodalJSON,
		ExportPDF: exportPDF,
	})
	if err != nil {
		log.Fatalf("report run failed: %v", err)
	}

	fmt.Println(out.Summary)
	fmt.Println()
	if len(out.ValidationIssues) > 0 {
		fmt.Println("Validation issues:")
		for _, issue := range out.ValidationIssues {
			fmt.Println("  - " + issue)
		}
	}
	if len(out.QuestionsForUser) > 0 {
		fmt.Println("Open questions:")
		for _, q := range out.QuestionsForUser {
			fmt.Println("  - " + q)
		}
	}
	fmt.Printf("Wrote %s\n", filepath.Join(outDir, "report_outputs.json"))
	fmt.Printf("Wrote %s\n", filepath.Join(outDir, "report_summary.md"))
	if exportPDF {
		fmt.Printf("Wrote %s\n", filepath.Join(outDir, "report_summary.pdf"))
	}
}
