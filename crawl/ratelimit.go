package crawl

import (
	"context"
	"sync"

	"github.com/askdocs/askdocs"
	"golang.org/x/time/rate"
)

var _ askdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a politeness delay per host using token
// buckets. Each host gets its own limiter, so fetches against
// different hosts never block each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a limiter that spaces requests to the same
// host by delaySeconds. A delay of zero disables limiting.
func NewDomainLimiter(delaySeconds float64) *DomainLimiter {
	limit := rate.Inf
	if delaySeconds > 0 {
		limit = rate.Limit(1 / delaySeconds)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
