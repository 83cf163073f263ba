package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of askdocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, host)
}
