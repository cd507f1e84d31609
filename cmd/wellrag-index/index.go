package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wellrag/internal/chunker"
	"wellrag/internal/domain"
	"wellrag/internal/pdftext"
	"wellrag/internal/retriever"
	"wellrag/internal/vectorstore"
	"wellrag/internal/vectorstore/jsonl"
	"wellrag/internal/vectorstore/qdrant"
)

var (
	indexDocs    []string
	indexDir     string
	chunkSize    int
	chunkOverlap int
)

var successLine = color.New(color.FgGreen).SprintfFunc()

// indexCmd embeds report PDFs page by page into a JSONL index directory.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a JSONL vector index from report PDFs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		size, overlap := chunkSize, chunkOverlap
		if size <= 0 {
			size = cfg.Chunker.Size
		}
		if overlap <= 0 {
			overlap = cfg.Chunker.Overlap
		}

		paths, err := collectPDFs(indexDocs)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDF documents found under --docs")
		}

		emb, err := buildEmbedder(cfg)
		if err != nil {
			return err
		}
		store, err := jsonl.Create(indexDir, jsonl.Manifest{
			Embedder:     emb.Name(),
			Model:        embedderModel(cfg),
			ChunkSize:    size,
			ChunkOverlap: overlap,
		})
		if err != nil {
			return err
		}

		// When a qdrant store is configured the build also mirrors the
		// vectors there, so teammates can query the shared collection.
		var buildTarget vectorstore.Storage = store
		if cfg.VectorStore.Type == "qdrant" && cfg.VectorStore.Qdrant != nil {
			remote := qdrant.NewStorage(qdrant.Config{
				URL:        cfg.VectorStore.Qdrant.URL,
				APIKey:     cfg.VectorStore.Qdrant.APIKey,
				Collection: cfg.VectorStore.Qdrant.Collection,
				Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
			})
			buildTarget = vectorstore.NewMulti(store, remote)
		}

		ck := chunker.NewWindowChunker(size, overlap)
		var chunks []domain.Chunk
		for _, path := range paths {
			pages, err := pdftext.LoadPages(path)
			if err != nil {
				return err
			}
			for _, page := range pages {
				page.Content = pdftext.CleanSpaces(page.Content)
				pageChunks, err := ck.Chunk(page)
				if err != nil {
					return err
				}
				chunks = append(chunks, pageChunks...)
			}
		}

		if _, err := retriever.Build(emb, buildTarget, chunks); err != nil {
			return err
		}
		if err := store.Flush(); err != nil {
			return err
		}

		fmt.Println(successLine("Indexed %d chunks from %d documents into %s", len(chunks), len(paths), indexDir))
		return nil
	},
}

// collectPDFs expands files and directories into a flat list of PDF paths.
func collectPDFs(inputs []string) ([]string, error) {
	var paths []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", in, err)
		}
		if !info.IsDir() {
			paths = append(paths, in)
			continue
		}
		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				continue
			}
			paths = append(paths, filepath.Join(in, e.Name()))
		}
	}
	return paths, nil
}

func init() {
	indexCmd.Flags().StringSliceVar(&indexDocs, "docs", nil, "PDF files or directories to index (required)")
	indexCmd.Flags().StringVar(&indexDir, "index", "index", "Index directory to create")
	indexCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Chunk window size in characters (default from config: 800)")
	indexCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", 0, "Chunk overlap in characters (default from config: 120)")
	_ = indexCmd.MarkFlagRequired("docs")
	rootCmd.AddCommand(indexCmd)
}
