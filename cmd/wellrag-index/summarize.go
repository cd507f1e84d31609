package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wellrag/internal/config"
	"wellrag/internal/domain"
	"wellrag/internal/retriever"
	"wellrag/internal/summary"
	"wellrag/internal/vectorstore/jsonl"
)

var (
	summarizeDoc   string
	summarizeIndex string
	summarizeWords int
	summarizeQuery string
	summarizeTopK  int
)

const defaultSummaryQuery = "well completion operations, HSE performance, logging results, depths, handover"

// summarizeCmd runs the retrieval-augmented summarization chain over an
// existing index and writes the result next to the index.
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize an indexed document with retrieval-augmented generation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rt, store, err := openRetriever(cfg, summarizeIndex)
		if err != nil {
			return err
		}

		query := summarizeQuery
		if query == "" {
			query = defaultSummaryQuery
		}
		hits, err := rt.Query(query, summarizeTopK)
		if err != nil {
			return err
		}
		if summarizeDoc != "" {
			hits = filterByDoc(hits, summarizeDoc)
			if len(hits) == 0 {
				return fmt.Errorf("no indexed chunks match document %s", summarizeDoc)
			}
		}

		chain := summary.NewChain(summary.ChainConfig{
			Model:     cfg.Chain.Model,
			BaseURL:   cfg.Chain.BaseURL,
			APIKeyEnv: cfg.Chain.APIKeyEnv,
		})
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Chain.TimeoutSecs)*time.Second)
		defer cancel()

		out, err := chain.Summarize(ctx, hits, query, summarizeWords)
		if err != nil {
			return err
		}

		stem := "index"
		if summarizeDoc != "" {
			stem = strings.TrimSuffix(filepath.Base(summarizeDoc), filepath.Ext(summarizeDoc))
		}
		outPath := filepath.Join(summarizeIndex, stem+".summary.json")
		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, append(raw, '\n'), 0o644); err != nil {
			return err
		}

		fmt.Println(out.Summary)
		fmt.Println()
		if len(out.Citations) > 0 {
			cite := color.New(color.FgCyan).SprintfFunc()
			fmt.Println("Sources:")
			for _, c := range out.Citations {
				fmt.Println(cite("  %s p.%d", filepath.Base(c.File), c.Page))
			}
		}
		fmt.Println(successLine("Wrote %s (%d words, %d chunks from %d in index)", outPath, out.WordCount, len(hits), store.Len()))
		return nil
	},
}

// openRetriever loads an index directory and wires it to the configured
// embedder. Corpus-fitted embedders re-prepare over the stored chunks.
func openRetriever(cfg *config.AppConfig, dir string) (*retriever.Retriever, *jsonl.Storage, error) {
	store, err := jsonl.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	emb, err := buildEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}
	if manifest := store.Manifest(); manifest.Embedder != emb.Name() {
		return nil, nil, fmt.Errorf("index was built with embedder %q, config selects %q", manifest.Embedder, emb.Name())
	}
	chunks := store.Chunks()
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	if err := emb.Prepare(texts); err != nil {
		return nil, nil, err
	}
	return retriever.Open(emb, store, chunks), store, nil
}

func filterByDoc(hits []domain.SearchResult, doc string) []domain.SearchResult {
	base := filepath.Base(doc)
	out := hits[:0]
	for _, h := range hits {
		if h.Chunk.Source == doc || filepath.Base(h.Chunk.Source) == base {
			out = append(out, h)
		}
	}
	return out
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeDoc, "doc", "", "Restrict to one indexed document (path or base name)")
	summarizeCmd.Flags().StringVar(&summarizeIndex, "index", "index", "Index directory to query")
	summarizeCmd.Flags().IntVar(&summarizeWords, "words", 200, "Maximum words in the summary")
	summarizeCmd.Flags().StringVar(&summarizeQuery, "query", "", "Retrieval query (default covers operations, HSE, logging, depths)")
	summarizeCmd.Flags().IntVar(&summarizeTopK, "k", 20, "Number of chunks to retrieve")
	rootCmd.AddCommand(summarizeCmd)
}
