package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wellrag/internal/summary"
	"wellrag/internal/tui"
)

var (
	previewIndex       string
	previewQuery       string
	previewTopK        int
	previewInteractive bool
)

// previewCmd inspects what retrieval returns for a query, either as a
// one-shot listing or in the interactive terminal UI.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview retrieval results from an index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rt, store, err := openRetriever(cfg, previewIndex)
		if err != nil {
			return err
		}

		if previewInteractive {
			manifest := store.Manifest()
			line := fmt.Sprintf("%d chunks, embedder %s, built %s", store.Len(), manifest.Embedder, manifest.CreatedAt)
			_, err := tea.NewProgram(tui.New(rt, line)).Run()
			return err
		}

		if previewQuery == "" {
			return fmt.Errorf("--query is required unless --interactive is set")
		}
		hits, err := rt.QueryWithFallback(previewQuery, previewTopK)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No results.")
			return nil
		}
		header := color.New(color.FgCyan).SprintfFunc()
		for i, h := range hits {
			fmt.Println(header("%d. %s p.%d  score=%.3f", i+1, filepath.Base(h.Chunk.Source), h.Chunk.Page, h.Score))
			fmt.Println("   " + summary.FirstSentence(h.Chunk.Text))
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewIndex, "index", "index", "Index directory to query")
	previewCmd.Flags().StringVar(&previewQuery, "query", "", "Retrieval query")
	previewCmd.Flags().IntVar(&previewTopK, "k", 5, "Number of chunks to retrieve")
	previewCmd.Flags().BoolVar(&previewInteractive, "interactive", false, "Open the interactive preview UI")
	rootCmd.AddCommand(previewCmd)
}
