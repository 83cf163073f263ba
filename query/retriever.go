// Package query answers questions against the indexed documentation:
// it embeds the query, retrieves the most similar chunks, and grounds
// an LLM answer in them.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/askdocs/askdocs"
	"github.com/rs/zerolog"
)

// Default retrieval settings.
const (
	DefaultTopK          = 5
	DefaultMinScore      = float32(0.5)
	DefaultContextBudget = 8000
)

// Retriever finds the chunks most relevant to a query and assembles
// them into a bounded context block for generation.
type Retriever struct {
	Embedder   askdocs.Embedder
	Store      askdocs.VectorStore
	Collection string

	TopK int

	// MinScore excludes matches scoring below it. Nil selects
	// DefaultMinScore; point at zero to disable the threshold.
	MinScore *float32

	ContextBudget int
	RetryDelays   []time.Duration
	Logger        zerolog.Logger
}

// Retrieved holds the outcome of a retrieval pass.
type Retrieved struct {
	Matches []askdocs.Match
	Context string
	Sources []askdocs.Source
}

// Retrieve embeds the query and returns the matching chunks, best
// first, along with the assembled context and deduplicated sources.
// An empty result is not an error: it means the documentation has
// nothing relevant above the score threshold.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Retrieved, error) {
	delays := r.RetryDelays
	if delays == nil {
		delays = askdocs.DefaultRetryDelays()
	}

	var vectors [][]float32
	err := askdocs.Retry(ctx, delays, func(ctx context.Context) error {
		var eerr error
		vectors, eerr = r.Embedder.Embed(ctx, []string{query})
		return eerr
	})
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "embedding query: %v", askdocs.ErrorMessage(err))
	}
	if len(vectors) != 1 {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "expected 1 query embedding, got %d", len(vectors))
	}

	topK := r.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	minScore := DefaultMinScore
	if r.MinScore != nil {
		minScore = *r.MinScore
	}

	var matches []askdocs.Match
	err = askdocs.Retry(ctx, delays, func(ctx context.Context) error {
		var serr error
		matches, serr = r.Store.Search(ctx, r.Collection, vectors[0], askdocs.SearchOptions{
			TopK:     topK,
			MinScore: minScore,
		})
		return serr
	})
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "searching index: %v", askdocs.ErrorMessage(err))
	}

	// Stores are expected to filter and order, but both properties are
	// load-bearing for confidence scoring, so enforce them here too.
	filtered := matches[:0]
	for _, m := range matches {
		if m.Score >= minScore {
			filtered = append(filtered, m)
		}
	}
	matches = filtered
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	r.Logger.Debug().Str("query", query).Int("matches", len(matches)).Msg("retrieved chunks")

	return &Retrieved{
		Matches: matches,
		Context: r.assembleContext(matches),
		Sources: collectSources(matches),
	}, nil
}

// assembleContext renders matches into the context block passed to the
// LLM, dropping the lowest scored matches once the budget is reached.
func (r *Retriever) assembleContext(matches []askdocs.Match) string {
	budget := r.ContextBudget
	if budget <= 0 {
		budget = DefaultContextBudget
	}

	var sb strings.Builder
	for i, m := range matches {
		block := fmt.Sprintf("\n\nContext Chunk %d (Score: %.3f, Source: %s):\n%s\n",
			i+1, m.Score, m.Payload.URL, m.Payload.Text)
		if sb.Len()+len(block) > budget {
			break
		}
		sb.WriteString(block)
	}
	return sb.String()
}

// collectSources returns one source per document, in match order,
// keeping the first (highest scored) occurrence of each URL.
func collectSources(matches []askdocs.Match) []askdocs.Source {
	sources := []askdocs.Source{}
	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m.Payload.URL] {
			continue
		}
		seen[m.Payload.URL] = true
		title := m.Payload.Title
		if title == "" {
			title = m.Payload.URL
		}
		sources = append(sources, askdocs.Source{URL: m.Payload.URL, Title: title})
	}
	return sources
}
