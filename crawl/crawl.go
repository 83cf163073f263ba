// Package crawl provides breadth-first crawling of documentation
// sites. It coordinates the URL frontier, per-host rate limiting,
// fetching with retries, and same-site link expansion.
package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/askdocs/askdocs"
	"github.com/rs/zerolog"
)

// Frontier sizing for a single crawl run.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Crawler walks a documentation site starting from a seed URL.
// Pages are visited breadth-first, scoped to the seed's host and path
// prefix, up to MaxDepth link hops and MaxPages successful fetches.
type Crawler struct {
	Fetcher     askdocs.Fetcher
	Parser      askdocs.PageParser
	Limiter     askdocs.DomainLimiter
	Sitemaps    askdocs.SitemapService // optional
	MaxDepth    int
	MaxPages    int
	RetryDelays []time.Duration
	Logger      zerolog.Logger
}

// Failure records a URL that could not be fetched during a run.
type Failure struct {
	URL string
	Err error
}

// Run is a single crawl in progress. It yields pages one at a time so
// the caller controls pacing and can stop early.
type Run struct {
	crawler    *Crawler
	frontier   *Frontier
	seedHost   string
	pathPrefix string
	fetched    int
	failures   []Failure
}

// Start seeds a crawl run. The seed URL is normalized and becomes the
// scope: only URLs on the same host whose path shares the seed's path
// prefix are followed. If a sitemap service is configured, URLs it
// discovers are queued alongside the seed.
func (c *Crawler) Start(ctx context.Context, seed string) (*Run, error) {
	normalized, err := Normalize(seed)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "invalid seed URL %q: %v", seed, err)
	}
	u, err := url.Parse(normalized)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, askdocs.Errorf(askdocs.EINVALID, "seed URL must be absolute: %q", seed)
	}

	run := &Run{
		crawler:    c,
		frontier:   NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		seedHost:   u.Host,
		pathPrefix: strings.TrimSuffix(u.Path, "/"),
	}
	run.frontier.Push(askdocs.Link{URL: normalized, Depth: 0})

	if c.Sitemaps != nil {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, normalized)
		if err != nil {
			c.Logger.Warn().Err(err).Str("seed", normalized).Msg("sitemap discovery failed")
		}
		for _, raw := range urls {
			if link, ok := run.admit(raw, 1); ok {
				run.frontier.Push(link)
			}
		}
		if len(urls) > 0 {
			c.Logger.Info().Int("urls", len(urls)).Msg("seeded frontier from sitemap")
		}
	}

	return run, nil
}

// Next fetches and returns the next page. The bool result is false
// when the run is complete, either because the frontier is empty or
// the page ceiling was reached. Fetch failures are recorded and
// skipped rather than ending the run; a non-nil error is returned only
// when the context is canceled.
func (r *Run) Next(ctx context.Context) (*askdocs.Page, bool, error) {
	c := r.crawler
	delays := c.RetryDelays
	if delays == nil {
		delays = askdocs.DefaultRetryDelays()
	}

	for {
		if c.MaxPages > 0 && r.fetched >= c.MaxPages {
			return nil, false, nil
		}
		link, ok := r.frontier.Pop()
		if !ok {
			return nil, false, nil
		}

		u, err := url.Parse(link.URL)
		if err != nil {
			r.failures = append(r.failures, Failure{URL: link.URL, Err: err})
			continue
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, false, err
		}

		var html string
		err = askdocs.Retry(ctx, delays, func(ctx context.Context) error {
			var ferr error
			html, ferr = c.Fetcher.Fetch(ctx, link.URL)
			return ferr
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, false, ctx.Err()
			}
			c.Logger.Warn().Err(err).Str("url", link.URL).Msg("fetch failed")
			r.failures = append(r.failures, Failure{URL: link.URL, Err: err})
			continue
		}
		r.fetched++

		page := &askdocs.Page{
			URL:       link.URL,
			Depth:     link.Depth,
			HTML:      html,
			FetchedAt: time.Now().UTC(),
		}
		if title, err := c.Parser.Title(html); err == nil {
			page.Title = title
		}

		if link.Depth < c.MaxDepth {
			r.expand(page)
		}

		return page, true, nil
	}
}

// Fetched returns the number of pages successfully fetched so far.
func (r *Run) Fetched() int { return r.fetched }

// Failures returns the URLs that could not be fetched.
func (r *Run) Failures() []Failure { return r.failures }

// Pending returns the number of queued URLs not yet visited.
func (r *Run) Pending() int { return r.frontier.Len() }

// expand parses links out of a fetched page and queues the in-scope
// ones one level deeper.
func (r *Run) expand(page *askdocs.Page) {
	links, err := r.crawler.Parser.Links(page.HTML, page.URL)
	if err != nil {
		r.crawler.Logger.Warn().Err(err).Str("url", page.URL).Msg("link extraction failed")
		return
	}
	queued := 0
	for _, raw := range links {
		if link, ok := r.admit(raw, page.Depth+1); ok {
			if r.frontier.Push(link) {
				queued++
			}
		}
	}
	r.crawler.Logger.Debug().Str("url", page.URL).Int("queued", queued).Msg("expanded links")
}

// admit normalizes a candidate URL and checks it against the run's
// scope. It returns the queueable link and whether it passed.
func (r *Run) admit(rawURL string, depth int) (askdocs.Link, bool) {
	normalized, err := Normalize(rawURL)
	if err != nil {
		return askdocs.Link{}, false
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return askdocs.Link{}, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return askdocs.Link{}, false
	}
	if u.Host != r.seedHost {
		return askdocs.Link{}, false
	}
	if r.pathPrefix != "" && !underPrefix(u.Path, r.pathPrefix) {
		return askdocs.Link{}, false
	}
	if SkipPath(normalized) {
		return askdocs.Link{}, false
	}
	return askdocs.Link{URL: normalized, Depth: depth}, true
}

// underPrefix checks if a path sits under the prefix at a path
// boundary, so /docs matches /docs/intro but not /docs-v2.
func underPrefix(path, prefix string) bool {
	trimmed := strings.TrimSuffix(prefix, "/")
	return path == trimmed || strings.HasPrefix(path, trimmed+"/")
}
