package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"wellrag/internal/domain"
)

const (
	indexFile    = "index.jsonl"
	manifestFile = "manifest.yaml"
)

// Entry is a single JSONL record in the on-disk index.
type Entry struct {
	ChunkID   string    `json:"chunk_id"`
	Doc       string    `json:"doc"`
	Page      int       `json:"page"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

// Manifest records how the index was built so later opens can check that
// queries are embedded the same way.
type Manifest struct {
	Embedder     string `yaml:"embedder"`
	Model        string `yaml:"model,omitempty"`
	Dimension    int    `yaml:"dimension"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	CreatedAt    string `yaml:"created_at"`
}

// Storage is a file-backed vector store: one JSONL file of embedded chunks
// plus a YAML manifest, under a single index directory. The index is built
// once and later opened read-only; concurrent writers to the same directory
// are not supported.
type Storage struct {
	dir       string
	dimension int
	manifest  Manifest
	entries   []Entry
	chunks    []domain.Chunk
	vectors   [][]float64
}

// Create prepares an empty index directory for building.
func Create(dir string, manifest Manifest) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().Format(time.RFC3339)
	}
	return &Storage{dir: dir, manifest: manifest}, nil
}

// Open loads an existing index directory read-only.
func Open(dir string) (*Storage, error) {
	s := &Storage{dir: dir}
	raw, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("read index manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.manifest); err != nil {
		return nil, fmt.Errorf("parse index manifest: %w", err)
	}
	s.dimension = s.manifest.Dimension

	file, err := os.Open(filepath.Join(dir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("parse index line %d: %w", lineNo, err)
		}
		s.append(entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return s, nil
}

// Manifest returns the index build metadata.
func (s *Storage) Manifest() Manifest { return s.manifest }

// Len reports the number of indexed chunks.
func (s *Storage) Len() int { return len(s.entries) }

// Chunks exposes the loaded chunk corpus. Corpus-fitted embedders such as
// TF-IDF need it to re-prepare their vocabulary after Open.
func (s *Storage) Chunks() []domain.Chunk { return s.chunks }

func (s *Storage) append(entry Entry) {
	s.entries = append(s.entries, entry)
	s.chunks = append(s.chunks, domain.Chunk{
		DocID:  entry.Doc,
		Index:  len(s.chunks),
		Start:  entry.Start,
		End:    entry.End,
		Page:   entry.Page,
		Source: entry.Doc,
		Text:   entry.Text,
	})
	s.vectors = append(s.vectors, entry.Embedding)
}

// Init records the vector dimension for a fresh build.
func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	s.manifest.Dimension = dimension
	return nil
}

// Upsert appends embedded chunks to the pending index.
func (s *Storage) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	for i, ch := range chunks {
		if len(vectors[i]) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		s.append(Entry{
			ChunkID:   fmt.Sprintf("%s:%d", ch.Source, ch.Index),
			Doc:       ch.Source,
			Page:      ch.Page,
			Start:     ch.Start,
			End:       ch.End,
			Text:      ch.Text,
			Embedding: vectors[i],
		})
	}
	return nil
}

// Search runs brute-force cosine similarity over the loaded entries.
// Results come back in descending score order, ties broken by index order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	idxs := make([]int, len(s.vectors))
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		idxs[i] = i
		scores[i] = cosine(s.vectors[i], vector)
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return scores[idxs[a]] > scores[idxs[b]]
	})
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.SearchResult{Chunk: s.chunks[j], Score: scores[j]})
	}
	return results, nil
}

// Clear drops all pending entries.
func (s *Storage) Clear() error {
	s.entries = nil
	s.chunks = nil
	s.vectors = nil
	return nil
}

// Flush writes the pending entries and the manifest to disk.
func (s *Storage) Flush() error {
	out, err := os.Create(filepath.Join(s.dir, indexFile))
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	for _, entry := range s.entries {
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("write index entry: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush index: %w", err)
	}

	raw, err := yaml.Marshal(s.manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, manifestFile), raw, 0o644)
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) != n || n == 0 {
		return 0
	}
	dot, na, nb := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
