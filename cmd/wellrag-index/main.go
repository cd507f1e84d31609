package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wellrag/internal/config"
	"wellrag/internal/embedding"
	"wellrag/internal/embedding/fastembed"
	"wellrag/internal/embedding/openai"
	"wellrag/internal/embedding/tfidf"
)

var cfgPath string

// rootCmd groups the index lifecycle commands: build, summarize, preview.
var rootCmd = &cobra.Command{
	Use:   "wellrag-index",
	Short: "Build and query persistent report indexes",
	Long:  "wellrag-index builds a JSONL vector index over report PDFs and answers retrieval-augmented summarization and preview queries against it.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default: ~/.config/wellrag/config.yaml)")
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(cfgPath)
}

// buildEmbedder assembles the configured embedder implementation.
func buildEmbedder(cfg *config.AppConfig) (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		return openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
	case "fastembed":
		opts := fastembed.Options{}
		if cfg.Embedder.Fastembed != nil {
			opts.Model = cfg.Embedder.Fastembed.Model
			opts.CacheDir = cfg.Embedder.Fastembed.CacheDir
		}
		return fastembed.NewEmbedder(opts)
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

// embedderModel names the model behind the embedder for the index manifest.
func embedderModel(cfg *config.AppConfig) string {
	switch cfg.Embedder.Type {
	case "openai":
		if cfg.Embedder.OpenAI != nil {
			return cfg.Embedder.OpenAI.Model
		}
	case "fastembed":
		if cfg.Embedder.Fastembed != nil {
			return cfg.Embedder.Fastembed.Model
		}
	}
	return ""
}

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
