package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.Asker = (*Asker)(nil)

// Asker is a mock implementation of askdocs.Asker.
type Asker struct {
	AskFn func(ctx context.Context, query string) (*askdocs.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, query string) (*askdocs.Answer, error) {
	return a.AskFn(ctx, query)
}
