// Package trafilatura extracts main content from documentation pages
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/askdocs/askdocs"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements askdocs.Extractor at compile time.
var _ askdocs.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip navigation, sidebars, and
// boilerplate from documentation pages, keeping the article body.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*askdocs.ExtractResult, error) {
	if rawHTML == "" {
		return nil, askdocs.Errorf(askdocs.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &askdocs.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
