package mock

import "github.com/askdocs/askdocs"

var _ askdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of askdocs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*askdocs.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*askdocs.ExtractResult, error) {
	return e.ExtractFn(html)
}
