package summary

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"wellrag/internal/domain"
)

// chainBatchSize is how many retrieved chunks go into one map step.
const chainBatchSize = 6

// Chain summarizes retrieved chunks with a chat-completion model in two
// passes: partial summaries per batch, then a combining pass bounded by the
// word limit. Citations always come from the metadata of the chunks that
// were actually retrieved; the model never invents them.
type Chain struct {
	client     *openai.Client
	model      string
	extractive *Extractive
}

// ChainConfig configures the summarization model. BaseURL may point at any
// OpenAI-compatible endpoint, including a local Ollama daemon's /v1.
type ChainConfig struct {
	Model     string
	BaseURL   string
	APIKeyEnv string
}

// NewChain builds a summarization chain. When no API key is available and
// no alternate endpoint is configured, the chain still works: it degrades
// to extractive summarization instead of failing the run.
func NewChain(cfg ChainConfig) *Chain {
	c := &Chain{model: cfg.Model, extractive: NewExtractive()}
	if c.model == "" {
		c.model = openai.GPT4oMini
	}
	key := ""
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" && cfg.BaseURL == "" {
		return c // no model reachable; extractive fallback only
	}
	conf := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	c.client = openai.NewClientWithConfig(conf)
	return c
}

// Summarize produces a word-limited narrative over the retrieved chunks and
// the citation list of the sources behind it.
func (c *Chain) Summarize(ctx context.Context, hits []domain.SearchResult, query string, wordLimit int) (domain.SummaryOutput, error) {
	citations := collectCitations(hits)
	text := c.generate(ctx, hits, query, wordLimit)
	text = EnforceWordLimit(text, wordLimit)
	return domain.SummaryOutput{
		Summary:   text,
		WordCount: CountWords(text),
		Citations: citations,
	}, nil
}

func (c *Chain) generate(ctx context.Context, hits []domain.SearchResult, query string, wordLimit int) string {
	if len(hits) == 0 {
		return ""
	}
	if c.client == nil {
		return c.fallback(hits, wordLimit)
	}

	var partials []string
	for start := 0; start < len(hits); start += chainBatchSize {
		end := start + chainBatchSize
		if end > len(hits) {
			end = len(hits)
		}
		prompt := mapPrompt(hits[start:end], query)
		partial, err := c.complete(ctx, prompt)
		if err != nil {
			return c.fallback(hits, wordLimit)
		}
		partials = append(partials, partial)
	}
	if len(partials) == 1 {
		return partials[0]
	}
	combined, err := c.complete(ctx, reducePrompt(partials, query, wordLimit))
	if err != nil {
		return c.fallback(hits, wordLimit)
	}
	return combined
}

func (c *Chain) fallback(hits []domain.SearchResult, wordLimit int) string {
	var b strings.Builder
	for _, h := range hits {
		b.WriteString(h.Chunk.Text)
		b.WriteString(" ")
	}
	// Roughly one sentence per 20 words of budget keeps the extract short
	maxSentences := wordLimit / 20
	if maxSentences < 3 {
		maxSentences = 3
	}
	return c.extractive.Summarize(b.String(), maxSentences)
}

func (c *Chain) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func mapPrompt(hits []domain.SearchResult, query string) string {
	var b strings.Builder
	b.WriteString("You are summarizing excerpts from an oilfield completion/workover report.\n")
	if query != "" {
		b.WriteString("Focus: " + query + "\n")
	}
	b.WriteString("Write a concise factual summary of the excerpts below. Report only what the excerpts state.\n\n")
	for _, h := range hits {
		fmt.Fprintf(&b, "[%s p.%d] %s\n\n", h.Chunk.Source, h.Chunk.Page, h.Chunk.Text)
	}
	return b.String()
}

func reducePrompt(partials []string, query string, wordLimit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Combine the partial summaries below into one coherent summary of at most %d words.\n", wordLimit)
	if query != "" {
		b.WriteString("Focus: " + query + "\n")
	}
	b.WriteString("\n")
	for i, p := range partials {
		fmt.Fprintf(&b, "Partial %d: %s\n\n", i+1, p)
	}
	return b.String()
}

// collectCitations dedupes (file, page) pairs in retrieval order.
func collectCitations(hits []domain.SearchResult) []domain.Citation {
	seen := make(map[domain.Citation]struct{}, len(hits))
	out := make([]domain.Citation, 0, len(hits))
	for _, h := range hits {
		c := domain.Citation{File: h.Chunk.Source, Page: h.Chunk.Page}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
