package mock

import "github.com/askdocs/askdocs"

var _ askdocs.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of askdocs.PageParser.
type PageParser struct {
	LinksFn func(html, baseURL string) ([]string, error)
	TitleFn func(html string) (string, error)
}

func (p *PageParser) Links(html, baseURL string) ([]string, error) {
	return p.LinksFn(html, baseURL)
}

func (p *PageParser) Title(html string) (string, error) {
	if p.TitleFn == nil {
		return "", nil
	}
	return p.TitleFn(html)
}
