//go:build fastembed

package fastembed

import (
	"errors"

	fe "github.com/anush008/fastembed-go"
)

// Embedder wraps a local pretrained sentence-embedding model (ONNX, via
// fastembed). The model is downloaded to CacheDir on first use.
type Embedder struct {
	model     *fe.FlagEmbedding
	dimension int
}

// Options configures the local embedding model.
type Options struct {
	Model    string // empty picks the library default (bge-small-en-v1.5)
	CacheDir string
}

// NewEmbedder initializes the local sentence-embedding model.
func NewEmbedder(opts Options) (*Embedder, error) {
	init := &fe.InitOptions{
		Model:    fe.EmbeddingModel(opts.Model),
		CacheDir: opts.CacheDir,
	}
	if opts.Model == "" {
		init.Model = fe.BGESmallENV15
	}
	m, err := fe.NewFlagEmbedding(init)
	if err != nil {
		return nil, err
	}
	return &Embedder{model: m}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "fastembed" }

// Prepare is a no-op; the model is pretrained.
func (e *Embedder) Prepare(corpus []string) error { return nil }

// Dimension returns the model's vector dimensionality, known after the
// first embed.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed runs the sentence-embedding model over one text.
func (e *Embedder) Embed(text string) ([]float64, error) {
	vecs, err := e.model.Embed([]string{text}, 1)
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, errors.New("empty embedding from model")
	}
	out := make([]float64, len(vecs[0]))
	for i, v := range vecs[0] {
		out[i] = float64(v)
	}
	if e.dimension == 0 {
		e.dimension = len(out)
	}
	return out, nil
}

// Close releases the ONNX session.
func (e *Embedder) Close() error {
	if e.model != nil {
		e.model.Destroy()
	}
	return nil
}
