package askdocs_test

import (
	"strings"
	"testing"

	"github.com/askdocs/askdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() askdocs.Config {
	return askdocs.Config{
		BaseURL:          "https://docs.example.com",
		MaxDepth:         5,
		MaxPages:         1000,
		CrawlDelay:       1.0,
		ChunkSize:        1000,
		ChunkOverlap:     100,
		TopK:             5,
		MinScore:         0.5,
		ContextBudget:    8000,
		GeminiAPIKey:     "test-key",
		EmbedModel:       "text-embedding-004",
		GenModel:         "gemini-2.5-flash",
		EmbedDimension:   768,
		Store:            "chromem",
		CollectionName:   "docs_chunks",
		ChromemPath:      "./data/chromem",
		BatchSize:        64,
		EmbedConcurrency: 4,
		Port:             8080,
		LogLevel:         "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("postgres requires database url", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Store = "postgres"
		cfg.DatabaseURL = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
		assert.Contains(t, askdocs.ErrorMessage(err), "DATABASE_URL")
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Store = "qdrant"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	})

	t.Run("unknown fetcher", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Fetcher = "curl"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	})

	t.Run("collects all violations", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BaseURL = ""
		cfg.GeminiAPIKey = ""
		cfg.ChunkSize = 0
		err := cfg.Validate()
		require.Error(t, err)
		msg := askdocs.ErrorMessage(err)
		assert.Contains(t, msg, "BASE_URL")
		assert.Contains(t, msg, "GEMINI_API_KEY")
		assert.Contains(t, msg, "CHUNK_SIZE")
		assert.Equal(t, 2, strings.Count(msg, ";"))
	})

	t.Run("overlap must be below size", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ChunkOverlap = cfg.ChunkSize
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, askdocs.EINVALID, askdocs.ErrorCode(err))
	})

	t.Run("relative base url", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BaseURL = "/docs"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, askdocs.ErrorMessage(err), "absolute")
	})
}
