//go:build !fastembed

package fastembed

import "fmt"

// Embedder is the stub used when the binary is built without the local
// model runtime.
type Embedder struct{}

// Options configures the local embedding model.
type Options struct {
	Model    string
	CacheDir string
}

// NewEmbedder reports that local embedding support is not compiled in.
func NewEmbedder(opts Options) (*Embedder, error) {
	return nil, fmt.Errorf("fastembed support not built in; rebuild with -tags fastembed")
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "fastembed" }

// Prepare is a no-op on the stub.
func (e *Embedder) Prepare(corpus []string) error { return nil }

// Dimension is always zero on the stub.
func (e *Embedder) Dimension() int { return 0 }

// Embed always fails on the stub.
func (e *Embedder) Embed(text string) ([]float64, error) {
	return nil, fmt.Errorf("fastembed support not built in")
}

// Close is a no-op on the stub.
func (e *Embedder) Close() error { return nil }
