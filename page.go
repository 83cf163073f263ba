package askdocs

import (
	"context"
	"time"
)

// Page represents a single page fetched during a crawl run. Pages are
// ephemeral: they exist only between the crawler and the extraction
// stage and are never persisted.
type Page struct {
	// URL is the normalized page URL; it is the page's unique key
	// within a crawl run.
	URL string

	// Depth is the number of link hops from the seed URL.
	Depth int

	// HTML is the raw page markup as fetched.
	HTML string

	// Title is the page title from the <title> element, if any.
	Title string

	// FetchedAt records when the page was retrieved.
	FetchedAt time.Time
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML content at the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// PageParser extracts crawl-relevant structure from raw HTML: the
// outbound links used to grow the frontier and the page title.
type PageParser interface {
	// Links parses HTML and returns the absolute URLs of all same-host
	// hyperlinks, resolved against baseURL, deduplicated in document
	// order.
	Links(html string, baseURL string) ([]string, error)

	// Title returns the page title from the document head.
	Title(html string) (string, error)
}
