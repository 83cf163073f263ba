// Package rod fetches pages with a headless Chrome browser, for
// documentation sites that render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/askdocs/askdocs"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ askdocs.Fetcher = (*Fetcher)(nil)

// DefaultMaxPages is the number of pages fetched before the browser is
// recycled. Chrome accumulates memory over long crawls and never
// returns to its baseline even with proper page cleanup, so a fresh
// browser is started periodically.
const DefaultMaxPages = 75

// Fetcher retrieves rendered HTML using Chrome browser automation.
// It is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	maxPages  int64
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets how many pages are fetched before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called
// when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.acquire().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", askdocs.Errorf(askdocs.EUNAVAILABLE, "failed to open browser page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", askdocs.Errorf(askdocs.EUNAVAILABLE, "failed to navigate to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", askdocs.Errorf(askdocs.EUNAVAILABLE, "failed to load %s: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", askdocs.Errorf(askdocs.EUNAVAILABLE, "failed to read HTML of %s: %v", url, err)
	}

	atomic.AddInt64(&f.pageCount, 1)
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown()
}

// acquire returns the current browser, recycling it first when the
// page count has reached the threshold.
func (f *Fetcher) acquire() *rod.Browser {
	f.mu.Lock()
	defer f.mu.Unlock()

	if atomic.LoadInt64(&f.pageCount) >= f.maxPages {
		f.recycle()
	}
	return f.browser
}

// launch starts a new browser instance with stability flags.
// Must be called with mu held, except from NewFetcher.
func (f *Fetcher) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return nil
}

// recycle replaces the browser with a fresh one. If the new browser
// fails to launch the old one is kept. Must be called with mu held.
func (f *Fetcher) recycle() {
	oldBrowser := f.browser
	oldLauncher := f.launcher
	f.browser = nil
	f.launcher = nil

	if err := f.launch(); err != nil {
		f.browser = oldBrowser
		f.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&f.pageCount, 0)
}

// shutdown closes the browser and launcher. Must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
