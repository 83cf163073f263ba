package query_test

import (
	"context"
	"testing"

	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/mock"
	"github.com/askdocs/askdocs/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	var gotSystem, gotUser string
	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			gotSystem = system
			gotUser = user
			return "Run the installer from the downloads page. (Source: https://docs.example.com/install)", nil
		},
	}

	retrieved := &query.Retrieved{
		Matches: []askdocs.Match{
			match("https://docs.example.com/install", "Install", "Run the installer.", 0, 0.9),
		},
		Context: "\n\nContext Chunk 1 (Score: 0.900, Source: https://docs.example.com/install):\nRun the installer.\n",
		Sources: []askdocs.Source{{URL: "https://docs.example.com/install", Title: "Install"}},
	}

	g := &query.Generator{LLM: llm}
	answer, err := g.Generate(context.Background(), "how do I install?", retrieved)
	require.NoError(t, err)

	assert.Contains(t, gotSystem, "ONLY on the provided context")
	assert.Contains(t, gotSystem, "cite the sources")
	assert.Contains(t, gotUser, "Question: how do I install?")
	assert.Contains(t, gotUser, retrieved.Context)

	assert.Contains(t, answer.Text, "Run the installer")
	assert.Equal(t, retrieved.Sources, answer.Sources)
	assert.Greater(t, answer.Confidence, 0.0)
}

func TestGenerator_Generate_NoMatchesSkipsModel(t *testing.T) {
	t.Parallel()

	called := false
	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			called = true
			return "", nil
		},
	}

	g := &query.Generator{LLM: llm}
	answer, err := g.Generate(context.Background(), "anything", &query.Retrieved{})
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, askdocs.NoAnswerText, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Zero(t, answer.Confidence)
}

func TestGenerator_Generate_Confidence(t *testing.T) {
	t.Parallel()

	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			return "a grounded answer", nil
		},
	}
	g := &query.Generator{LLM: llm}

	t.Run("BlendsAverageAndHighQualityShare", func(t *testing.T) {
		t.Parallel()

		retrieved := &query.Retrieved{
			Matches: []askdocs.Match{
				match("https://docs.example.com/a", "A", "a", 0, 0.9),
				match("https://docs.example.com/b", "B", "b", 0, 0.5),
			},
		}

		answer, err := g.Generate(context.Background(), "q", retrieved)
		require.NoError(t, err)

		// avg 0.7 weighted 0.6, one of two above 0.7 weighted 0.4.
		assert.InDelta(t, 0.7*0.6+0.5*0.4, answer.Confidence, 0.001)
	})

	t.Run("CappedAtOne", func(t *testing.T) {
		t.Parallel()

		retrieved := &query.Retrieved{
			Matches: []askdocs.Match{
				match("https://docs.example.com/a", "A", "a", 0, 1.0),
				match("https://docs.example.com/b", "B", "b", 0, 1.0),
			},
		}

		answer, err := g.Generate(context.Background(), "q", retrieved)
		require.NoError(t, err)
		assert.Equal(t, 1.0, answer.Confidence)
	})
}

func TestGenerator_Generate_ModelFailure(t *testing.T) {
	t.Parallel()

	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			return "", askdocs.Errorf(askdocs.EUNAVAILABLE, "model overloaded")
		},
	}

	g := &query.Generator{LLM: llm}
	_, err := g.Generate(context.Background(), "q", &query.Retrieved{
		Matches: []askdocs.Match{match("https://docs.example.com/a", "A", "a", 0, 0.9)},
	})
	require.Error(t, err)
	assert.Equal(t, askdocs.EUNAVAILABLE, askdocs.ErrorCode(err))
}

func TestGenerator_Generate_EmptyModelResponse(t *testing.T) {
	t.Parallel()

	llm := &mock.LLM{
		CompleteFn: func(ctx context.Context, system, user string) (string, error) {
			return "   \n", nil
		},
	}

	g := &query.Generator{LLM: llm}
	_, err := g.Generate(context.Background(), "q", &query.Retrieved{
		Matches: []askdocs.Match{match("https://docs.example.com/a", "A", "a", 0, 0.9)},
	})
	require.Error(t, err)
	assert.Equal(t, askdocs.EINTERNAL, askdocs.ErrorCode(err))
}
