package askdocs

import "context"

// Embedder turns text into fixed-dimension semantic vectors. It is a
// consumed capability: implementations wrap an external provider and
// are swappable for testing.
type Embedder interface {
	// Embed returns one vector per input text, order-preserving, same
	// length in and out. A transient provider failure applies to the
	// whole batch; callers retry the batch as a unit.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the fixed vector dimension this embedder
	// produces. It must match the collection dimension; a mismatch is
	// a fatal configuration error.
	Dimension() int
}
