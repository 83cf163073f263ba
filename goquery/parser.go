// Package goquery implements HTML page parsing using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/askdocs/askdocs"
)

// Compile-time interface verification.
var _ askdocs.PageParser = (*Parser)(nil)

// Parser extracts links and titles from fetched HTML pages.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Links returns the href targets of all anchors in the document,
// resolved against baseURL, in document order. Only same-host HTTP
// links are returned; duplicates are dropped, keeping the first
// occurrence. Fragment-only anchors and javascript:/mailto:/tel:
// links are skipped.
func (p *Parser) Links(html, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}

		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links, nil
}

// Title returns the text of the document's <title> element, trimmed.
func (p *Parser) Title(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", askdocs.Errorf(askdocs.EINVALID, "failed to parse HTML: %v", err)
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

// isNonHTTPLink reports hrefs that can never resolve to a fetchable page.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// resolveURL resolves href against the base URL.
// Returns an empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}
