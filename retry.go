package askdocs

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays used for transient
// failures against remote services: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retry runs fn with exponential backoff. It makes len(delays)+1
// attempts in total, sleeping delays[i] between attempt i and i+1.
// It returns the last error once attempts are exhausted, or the
// context error if the context is canceled while waiting.
func Retry(ctx context.Context, delays []time.Duration, fn func(context.Context) error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := fn(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return lastErr
}
