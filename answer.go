package askdocs

import "context"

// NoAnswerText is the fixed response returned when retrieval finds
// nothing relevant. It is a valid answer, not an error.
const NoAnswerText = "no relevant information found"

// Source identifies a documentation page an answer was grounded on.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Answer is the result of one question: generated text, the pages it
// was grounded on in descending relevance order, and a confidence
// signal in [0,1] derived from retrieval quality (not from the model's
// self-assessment). Answers are ephemeral and never persisted.
type Answer struct {
	Text       string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// LLM generates text from a grounded prompt. It is a consumed
// capability wrapping an external language-model provider.
type LLM interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Asker answers natural language questions about the indexed
// documentation.
type Asker interface {
	Ask(ctx context.Context, query string) (*Answer, error)
}
