package askdocs

import "context"

// Document is the cleaned content of one crawled page: boilerplate
// stripped, reading-order text preserved as markdown. Only chunks of a
// document reach the vector store; the document itself is kept only
// when an archive is configured.
type Document struct {
	URL   string
	Title string
	Text  string
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms extracted content HTML into the plain markdown
// text that gets chunked and embedded.
type Converter interface {
	Convert(html string) (string, error)
}

// DocumentArchive persists converted documents outside the vector
// store, as browsable files for inspection or offline reading.
type DocumentArchive interface {
	SaveDocument(ctx context.Context, doc *Document) error
}
