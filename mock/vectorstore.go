package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of askdocs.VectorStore.
type VectorStore struct {
	EnsureCollectionFn func(ctx context.Context, name string, dimension int) error
	UpsertFn           func(ctx context.Context, collection string, points []askdocs.VectorPoint) error
	SearchFn           func(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error)
	DeleteStaleFn      func(ctx context.Context, collection, url string, keep int) error
	CloseFn            func() error
}

func (s *VectorStore) EnsureCollection(ctx context.Context, name string, dimension int) error {
	return s.EnsureCollectionFn(ctx, name, dimension)
}

func (s *VectorStore) Upsert(ctx context.Context, collection string, points []askdocs.VectorPoint) error {
	return s.UpsertFn(ctx, collection, points)
}

func (s *VectorStore) Search(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error) {
	return s.SearchFn(ctx, collection, vector, opts)
}

func (s *VectorStore) DeleteStale(ctx context.Context, collection, url string, keep int) error {
	if s.DeleteStaleFn == nil {
		return nil
	}
	return s.DeleteStaleFn(ctx, collection, url, keep)
}

func (s *VectorStore) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
