package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of askdocs.Embedder.
type Embedder struct {
	EmbedFn     func(ctx context.Context, texts []string) ([][]float32, error)
	DimensionFn func() int
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Dimension() int {
	if e.DimensionFn == nil {
		return 768
	}
	return e.DimensionFn()
}
