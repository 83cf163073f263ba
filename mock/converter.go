package mock

import "github.com/askdocs/askdocs"

var _ askdocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of askdocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
