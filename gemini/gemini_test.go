package gemini_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askdocs/askdocs/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewEmbedder_Defaults(t *testing.T) {
	t.Parallel()

	e := gemini.NewEmbedder(nil, "", 0)
	assert.Equal(t, gemini.DefaultEmbedDimension, e.Dimension())

	e = gemini.NewEmbedder(nil, "text-embedding-004", 512)
	assert.Equal(t, 512, e.Dimension())
}

func TestEmbedder_Embed_RequestsConfiguredDimension(t *testing.T) {
	t.Parallel()

	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embeddings":[{"values":[0.1,0.2,0.3]},{"values":[0.4,0.5,0.6]}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      "test-api-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)

	e := gemini.NewEmbedder(client, "text-embedding-004", 512)

	vectors, err := e.Embed(ctx, []string{"first chunk", "second chunk"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vectors[0])

	// The configured dimension has to reach the provider, which
	// returns full-size vectors unless asked to truncate.
	assert.Contains(t, string(body), `"outputDimensionality":512`)
	assert.Contains(t, string(body), `"taskType":"RETRIEVAL_DOCUMENT"`)
}
