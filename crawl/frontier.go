package crawl

import (
	"sync"

	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/bloom"
)

// Compile-time interface verification.
var _ askdocs.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory breadth-first URL frontier with Bloom
// filter deduplication. It is safe for concurrent use by multiple
// goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []askdocs.Link
}

// NewFrontier creates a Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen. URLs are expected
// to be normalized by the caller before pushing.
func (f *Frontier) Push(link askdocs.Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Test(link.URL) {
		return false
	}
	f.seen.Add(link.URL)
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the next link in FIFO order, so shallower pages are
// visited before deeper ones.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (askdocs.Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return askdocs.Link{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}
