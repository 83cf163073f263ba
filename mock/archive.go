package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.DocumentArchive = (*DocumentArchive)(nil)

// DocumentArchive is a mock implementation of askdocs.DocumentArchive.
type DocumentArchive struct {
	SaveDocumentFn func(ctx context.Context, doc *askdocs.Document) error
}

func (a *DocumentArchive) SaveDocument(ctx context.Context, doc *askdocs.Document) error {
	return a.SaveDocumentFn(ctx, doc)
}
