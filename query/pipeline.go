package query

import (
	"context"
	"strings"

	"github.com/askdocs/askdocs"
	"github.com/rs/zerolog"
)

// Pipeline wires retrieval and generation into the Asker used by the
// CLI and the HTTP server.
type Pipeline struct {
	Retriever *Retriever
	Generator *Generator
	Logger    zerolog.Logger
}

var _ askdocs.Asker = (*Pipeline)(nil)

// Ask answers a question against the indexed documentation.
func (p *Pipeline) Ask(ctx context.Context, query string) (*askdocs.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, askdocs.Errorf(askdocs.EINVALID, "query must not be empty")
	}

	retrieved, err := p.Retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	answer, err := p.Generator.Generate(ctx, query, retrieved)
	if err != nil {
		return nil, err
	}

	p.Logger.Info().
		Str("query", query).
		Int("matches", len(retrieved.Matches)).
		Int("sources", len(answer.Sources)).
		Float64("confidence", answer.Confidence).
		Msg("answered question")

	return answer, nil
}
