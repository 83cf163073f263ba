// Package pgvector implements the vector store on PostgreSQL with the
// pgvector extension. It is the backend for deployments that want
// shared, durable storage instead of the embedded default.
package pgvector

import (
	"context"
	"fmt"
	"regexp"

	"github.com/askdocs/askdocs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"
)

// Ensure Store implements askdocs.VectorStore at compile time.
var _ askdocs.VectorStore = (*Store)(nil)

// Store keeps each collection in its own table named
// askdocs_<collection>, created on demand by EnsureCollection.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database at the given URL.
func NewStore(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "invalid database URL: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "connecting to postgres: %v", err)
	}
	return &Store{pool: pool}, nil
}

// collectionPattern restricts collection names to safe SQL identifier
// characters, since the table name cannot be a bind parameter.
var collectionPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func tableName(collection string) (string, error) {
	if !collectionPattern.MatchString(collection) {
		return "", askdocs.Errorf(askdocs.EINVALID, "invalid collection name %q", collection)
	}
	return "askdocs_" + collection, nil
}

// EnsureCollection creates the collection table and its indexes if
// they do not exist.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return askdocs.Errorf(askdocs.EINVALID, "dimension must be positive, got %d", dimension)
	}
	table, err := tableName(name)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS %[1]s (
  id          TEXT PRIMARY KEY,
  url         TEXT NOT NULL,
  title       TEXT NOT NULL DEFAULT '',
  chunk_index INT NOT NULL,
  content     TEXT NOT NULL,
  vec         vector(%[2]d) NOT NULL,
  created_at  TIMESTAMP WITH TIME ZONE DEFAULT now()
);

CREATE INDEX IF NOT EXISTS %[1]s_url_idx ON %[1]s (url);

CREATE INDEX IF NOT EXISTS %[1]s_vec_idx
  ON %[1]s USING ivfflat (vec vector_cosine_ops) WITH (lists = 100);
`, table, dimension)

	if _, err := s.pool.Exec(ctx, q); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "creating collection %q: %v", name, err)
	}
	return nil
}

// Upsert writes points into the collection, replacing rows with the
// same IDs. The batch goes out in a single round trip.
func (s *Store) Upsert(ctx context.Context, collection string, points []askdocs.VectorPoint) error {
	if len(points) == 0 {
		return nil
	}
	table, err := tableName(collection)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`
INSERT INTO %s (id, url, title, chunk_index, content, vec)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  url         = EXCLUDED.url,
  title       = EXCLUDED.title,
  chunk_index = EXCLUDED.chunk_index,
  content     = EXCLUDED.content,
  vec         = EXCLUDED.vec`, table)

	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(q, p.ID, p.Payload.URL, p.Payload.Title, p.Payload.ChunkIndex, p.Payload.Text, pgv.NewVector(p.Vector))
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range points {
		if _, err := results.Exec(); err != nil {
			return askdocs.Errorf(askdocs.EINTERNAL, "upserting into %q: %v", collection, err)
		}
	}
	return nil
}

// Search returns the points most similar to the query vector using
// cosine similarity, best first. The score threshold and limit are
// applied in SQL.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error) {
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	if opts.TopK <= 0 {
		return []askdocs.Match{}, nil
	}

	q := fmt.Sprintf(`
SELECT id, url, title, chunk_index, content, 1 - (vec <=> $1) AS score
FROM %s
WHERE 1 - (vec <=> $1) >= $2
ORDER BY vec <=> $1
LIMIT $3`, table)

	rows, err := s.pool.Query(ctx, q, pgv.NewVector(vector), opts.MinScore, opts.TopK)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "querying %q: %v", collection, err)
	}
	defer rows.Close()

	matches := []askdocs.Match{}
	for rows.Next() {
		var m askdocs.Match
		var score float64
		if err := rows.Scan(&m.ID, &m.Payload.URL, &m.Payload.Title, &m.Payload.ChunkIndex, &m.Payload.Text, &score); err != nil {
			return nil, askdocs.Errorf(askdocs.EINTERNAL, "scanning match: %v", err)
		}
		m.Score = float32(score)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "reading matches: %v", err)
	}
	return matches, nil
}

// DeleteStale removes chunks of a document with index >= keep, so a
// page that shrank since the last ingest leaves no orphaned chunks.
func (s *Store) DeleteStale(ctx context.Context, collection, url string, keep int) error {
	table, err := tableName(collection)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE url = $1 AND chunk_index >= $2`, table)
	if _, err := s.pool.Exec(ctx, q, url, keep); err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "deleting stale chunks for %q: %v", url, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
