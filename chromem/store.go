// Package chromem implements the vector store on top of the embedded
// chromem-go database. It is the default backend: no external services,
// with optional persistence to disk.
package chromem

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/askdocs/askdocs"
	"github.com/philippgille/chromem-go"
)

// maxStaleSweep bounds how many trailing chunk IDs DeleteStale probes
// per document. Documents are assumed to never exceed this many chunks.
const maxStaleSweep = 4096

// Ensure Store implements askdocs.VectorStore at compile time.
var _ askdocs.VectorStore = (*Store)(nil)

// Store is a chromem-go backed vector store. Embeddings are always
// supplied by the caller; chromem's own embedding hooks are disabled.
type Store struct {
	db *chromem.DB

	mu         sync.Mutex
	dimensions map[string]int
}

// NewStore creates an in-memory Store. Contents are lost on exit.
func NewStore() *Store {
	return &Store{
		db:         chromem.NewDB(),
		dimensions: make(map[string]int),
	}
}

// NewPersistentStore creates a Store that persists collections under
// the given directory.
func NewPersistentStore(path string) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, true)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "opening chromem database: %v", err)
	}
	return &Store{
		db:         db,
		dimensions: make(map[string]int),
	}, nil
}

// EnsureCollection creates the collection if it does not exist and
// records the expected vector dimension for later validation.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return askdocs.Errorf(askdocs.EINVALID, "dimension must be positive, got %d", dimension)
	}

	_, err := s.db.GetOrCreateCollection(name, nil, rejectEmbedding)
	if err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "creating collection %q: %v", name, err)
	}

	s.mu.Lock()
	s.dimensions[name] = dimension
	s.mu.Unlock()
	return nil
}

// Upsert writes points into the collection, replacing any existing
// points with the same IDs.
func (s *Store) Upsert(ctx context.Context, collection string, points []askdocs.VectorPoint) error {
	if len(points) == 0 {
		return nil
	}
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}
	dim := s.dimension(collection)

	docs := make([]chromem.Document, len(points))
	for i, p := range points {
		if dim > 0 && len(p.Vector) != dim {
			return askdocs.Errorf(askdocs.EINVALID, "point %q has dimension %d, collection %q expects %d", p.ID, len(p.Vector), collection, dim)
		}
		docs[i] = chromem.Document{
			ID:        p.ID,
			Embedding: p.Vector,
			Content:   p.Payload.Text,
			Metadata: map[string]string{
				"url":         p.Payload.URL,
				"title":       p.Payload.Title,
				"chunk_index": strconv.Itoa(p.Payload.ChunkIndex),
			},
		}
	}

	if err := coll.AddDocuments(ctx, docs, 1); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "upserting %d points into %q: %v", len(points), collection, err)
	}
	return nil
}

// Search returns the points most similar to the query vector, best
// first, dropping matches below opts.MinScore.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	if dim := s.dimension(collection); dim > 0 && len(vector) != dim {
		return nil, askdocs.Errorf(askdocs.EINVALID, "query vector has dimension %d, collection %q expects %d", len(vector), collection, dim)
	}

	// chromem rejects nResults larger than the collection size.
	n := opts.TopK
	if count := coll.Count(); n > count {
		n = count
	}
	if n <= 0 {
		return []askdocs.Match{}, nil
	}

	results, err := coll.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "querying collection %q: %v", collection, err)
	}

	matches := make([]askdocs.Match, 0, len(results))
	for _, res := range results {
		if res.Similarity < opts.MinScore {
			continue
		}
		chunkIndex, _ := strconv.Atoi(res.Metadata["chunk_index"])
		matches = append(matches, askdocs.Match{
			ID:    res.ID,
			Score: res.Similarity,
			Payload: askdocs.PointPayload{
				URL:        res.Metadata["url"],
				Title:      res.Metadata["title"],
				ChunkIndex: chunkIndex,
				Text:       res.Content,
			},
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches, nil
}

// DeleteStale removes chunks of a document with index >= keep. Chunk
// IDs are deterministic, so stale chunks from a previous, longer
// version of the page are addressed directly by ID.
func (s *Store) DeleteStale(ctx context.Context, collection, url string, keep int) error {
	coll, err := s.collection(collection)
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	if keep >= maxStaleSweep {
		return nil
	}

	ids := make([]string, 0, maxStaleSweep-keep)
	for i := keep; i < maxStaleSweep; i++ {
		ids = append(ids, askdocs.ChunkID(url, i))
	}

	if err := coll.Delete(ctx, nil, nil, ids...); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "deleting stale chunks for %q: %v", url, err)
	}
	return nil
}

// Close is a no-op; chromem persists writes as they happen.
func (s *Store) Close() error {
	return nil
}

func (s *Store) collection(name string) (*chromem.Collection, error) {
	coll := s.db.GetCollection(name, rejectEmbedding)
	if coll == nil {
		return nil, askdocs.Errorf(askdocs.ENOTFOUND, "collection %q does not exist", name)
	}
	return coll, nil
}

func (s *Store) dimension(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimensions[name]
}

// rejectEmbedding guards against chromem trying to embed content
// itself; all vectors come from the configured embedder.
func rejectEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, askdocs.Errorf(askdocs.EINTERNAL, "collection requires caller-provided embeddings")
}
