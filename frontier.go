package askdocs

import "context"

// Link is a URL queued for crawling, tagged with its distance from the
// seed.
type Link struct {
	URL   string
	Depth int
}

// URLFrontier manages a crawl queue with deduplication. Pushing a URL
// that has already been seen is a no-op, which is what guarantees each
// page is visited at most once per run.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link Link) bool

	// Pop returns the next link in breadth-first order.
	// Returns false if the frontier is empty.
	Pop() (Link, bool)

	// Len returns the number of links waiting in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-host politeness delays.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
