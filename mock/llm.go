package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.LLM = (*LLM)(nil)

// LLM is a mock implementation of askdocs.LLM.
type LLM struct {
	CompleteFn func(ctx context.Context, system, user string) (string, error)
}

func (l *LLM) Complete(ctx context.Context, system, user string) (string, error) {
	return l.CompleteFn(ctx, system, user)
}
