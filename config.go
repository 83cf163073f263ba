package askdocs

import (
	"fmt"
	"net/url"
	"strings"
)

// Config holds all runtime settings, loaded from the environment by
// the command layer. Struct tags follow envconfig conventions.
type Config struct {
	// Crawling. Fetcher selects plain HTTP or a headless browser for
	// JavaScript rendered sites.
	BaseURL    string  `envconfig:"BASE_URL"`
	Fetcher    string  `envconfig:"FETCHER" default:"http"`
	MaxDepth   int     `envconfig:"MAX_DEPTH" default:"5"`
	MaxPages   int     `envconfig:"MAX_PAGES" default:"1000"`
	CrawlDelay float64 `envconfig:"CRAWL_DELAY" default:"1.0"`

	// Chunking.
	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"1000"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"100"`

	// Retrieval.
	TopK          int     `envconfig:"TOP_K" default:"5"`
	MinScore      float32 `envconfig:"MIN_SCORE" default:"0.5"`
	ContextBudget int     `envconfig:"CONTEXT_BUDGET" default:"8000"`

	// Models.
	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`
	EmbedModel     string `envconfig:"EMBED_MODEL" default:"text-embedding-004"`
	GenModel       string `envconfig:"GEN_MODEL" default:"gemini-2.5-flash"`
	EmbedDimension int    `envconfig:"EMBED_DIMENSION" default:"768"`

	// Storage. Store selects the vector store backend.
	Store          string `envconfig:"STORE" default:"chromem"`
	CollectionName string `envconfig:"COLLECTION_NAME" default:"docs_chunks"`
	ChromemPath    string `envconfig:"CHROMEM_PATH" default:"./data/chromem"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`

	// Ingestion throughput.
	BatchSize        int `envconfig:"BATCH_SIZE" default:"64"`
	EmbedConcurrency int `envconfig:"EMBED_CONCURRENCY" default:"4"`

	// HistoryPath is the SQLite database holding ingestion run
	// summaries. Empty disables run history.
	HistoryPath string `envconfig:"HISTORY_PATH" default:"./data/askdocs.db"`

	// Server.
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Validate checks the configuration and reports every violation in a
// single error so a misconfigured deployment can be fixed in one pass.
func (c *Config) Validate() error {
	var problems []string

	if c.BaseURL == "" {
		problems = append(problems, "BASE_URL is required")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, "BASE_URL must be an absolute http(s) URL")
	}
	if c.GeminiAPIKey == "" {
		problems = append(problems, "GEMINI_API_KEY is required")
	}
	switch c.Fetcher {
	case "", "http", "browser":
	default:
		problems = append(problems, fmt.Sprintf("FETCHER must be http or browser, got %q", c.Fetcher))
	}
	if c.MaxDepth < 0 {
		problems = append(problems, "MAX_DEPTH must not be negative")
	}
	if c.MaxPages <= 0 {
		problems = append(problems, "MAX_PAGES must be positive")
	}
	if c.CrawlDelay < 0 {
		problems = append(problems, "CRAWL_DELAY must not be negative")
	}
	if c.ChunkSize <= 0 {
		problems = append(problems, "CHUNK_SIZE must be positive")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		problems = append(problems, "CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}
	if c.TopK <= 0 {
		problems = append(problems, "TOP_K must be positive")
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		problems = append(problems, "MIN_SCORE must be in [0, 1]")
	}
	if c.ContextBudget <= 0 {
		problems = append(problems, "CONTEXT_BUDGET must be positive")
	}
	if c.EmbedDimension <= 0 {
		problems = append(problems, "EMBED_DIMENSION must be positive")
	}
	switch c.Store {
	case "chromem":
		if c.ChromemPath == "" {
			problems = append(problems, "CHROMEM_PATH is required when STORE=chromem")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE must be chromem or postgres, got %q", c.Store))
	}
	if c.BatchSize <= 0 {
		problems = append(problems, "BATCH_SIZE must be positive")
	}
	if c.EmbedConcurrency <= 0 {
		problems = append(problems, "EMBED_CONCURRENCY must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, "PORT must be a valid port number")
	}

	if len(problems) > 0 {
		return Errorf(EINVALID, "invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
