package askdocs

import "context"

// SitemapService discovers additional seed URLs for a site, typically
// by reading robots.txt sitemap directives and sitemap XML files.
type SitemapService interface {
	// DiscoverURLs returns crawlable URLs under the base URL's scope.
	// An empty slice with a nil error means no sitemap was found.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
