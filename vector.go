package askdocs

import "context"

// PointPayload is the chunk metadata stored alongside each vector and
// returned with search matches.
type PointPayload struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunkIndex"`
	Text       string `json:"text"`
}

// VectorPoint is the persisted unit of the vector store: a chunk's
// deterministic ID, its embedding, and its payload. Upsert by ID is the
// only write path, so re-ingestion overwrites in place instead of
// duplicating.
type VectorPoint struct {
	ID      string
	Vector  []float32
	Payload PointPayload
}

// Match is a single search result.
type Match struct {
	ID      string
	Score   float32
	Payload PointPayload
}

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// TopK caps the number of matches returned.
	TopK int

	// MinScore excludes matches scoring below it, even inside the
	// top-k. Zero or fewer matches is a valid, non-error outcome.
	MinScore float32
}

// VectorStore provides durable storage and nearest-neighbor search over
// vector points. It is a consumed capability with narrow operations;
// implementations hide the concrete database.
//
// A store never holds two points with the same ID.
type VectorStore interface {
	// EnsureCollection creates the named fixed-dimension collection if
	// it does not exist. An existing collection with a different
	// dimension is a fatal configuration error (EINVALID).
	EnsureCollection(ctx context.Context, name string, dimension int) error

	// Upsert inserts or replaces points by ID.
	Upsert(ctx context.Context, collection string, points []VectorPoint) error

	// Search returns at most opts.TopK matches with similarity above
	// opts.MinScore, ordered by descending score.
	Search(ctx context.Context, collection string, vector []float32, opts SearchOptions) ([]Match, error)

	// DeleteStale removes points of the given document URL whose chunk
	// index is keep or greater. The ingestion pipeline calls it after
	// upserting a re-ingested document so chunks beyond the document's
	// new length do not linger.
	DeleteStale(ctx context.Context, collection string, url string, keep int) error

	// Close releases the underlying database resources.
	Close() error
}
