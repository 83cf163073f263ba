package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/mock"
	"github.com/askdocs/askdocs/query"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeline(store *mock.VectorStore, llm *mock.LLM) *query.Pipeline {
	return &query.Pipeline{
		Retriever: &query.Retriever{
			Embedder:    staticQueryEmbedder(),
			Store:       store,
			Collection:  "docs_chunks",
			TopK:        5,
			MinScore:    scoreThreshold(0.5),
			RetryDelays: []time.Duration{},
			Logger:      zerolog.Nop(),
		},
		Generator: &query.Generator{LLM: llm},
		Logger:    zerolog.Nop(),
	}
}

func TestPipeline_Ask(t *testing.T) {
	t.Parallel()

	store := &mock.VectorStore{
		SearchFn: func(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error) {
			return []askdocs.Match{
				match("https://docs.example.com/auth", "Authentication", "Use API keys.", 0, 0.85),
			}, nil
		},
	}
	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			return "Authenticate with an API key. (Source: https://docs.example.com/auth)", nil
		},
	}

	answer, err := newPipeline(store, llm).Ask(context.Background(), "how do I authenticate?")
	require.NoError(t, err)

	assert.Contains(t, answer.Text, "API key")
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "https://docs.example.com/auth", answer.Sources[0].URL)
	assert.Greater(t, answer.Confidence, 0.0)
}

func TestPipeline_Ask_RejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	searched := false
	store := &mock.VectorStore{
		SearchFn: func(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error) {
			searched = true
			return nil, nil
		},
	}

	p := newPipeline(store, &mock.LLM{})
	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := p.Ask(context.Background(), q)
		require.Error(t, err)
		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	}
	assert.False(t, searched)
}

func TestPipeline_Ask_NoRelevantChunks(t *testing.T) {
	t.Parallel()

	store := &mock.VectorStore{
		SearchFn: func(ctx context.Context, collection string, vector []float32, opts askdocs.SearchOptions) ([]askdocs.Match, error) {
			return []askdocs.Match{}, nil
		},
	}
	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			t.Fatal("model must not be consulted without context")
			return "", nil
		},
	}

	answer, err := newPipeline(store, llm).Ask(context.Background(), "something off topic")
	require.NoError(t, err)
	assert.Equal(t, askdocs.NoAnswerText, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Zero(t, answer.Confidence)
}
