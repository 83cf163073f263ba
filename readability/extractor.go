// Package readability extracts main content from documentation pages
// using go-readability. It serves as the fallback behind the
// trafilatura extractor for pages trafilatura cannot handle.
package readability

import (
	"strings"

	"github.com/askdocs/askdocs"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements askdocs.Extractor at compile time.
var _ askdocs.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &askdocs.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
