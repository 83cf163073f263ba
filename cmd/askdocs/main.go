package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/chromem"
	"github.com/askdocs/askdocs/crawl"
	"github.com/askdocs/askdocs/fs"
	"github.com/askdocs/askdocs/gemini"
	"github.com/askdocs/askdocs/goquery"
	"github.com/askdocs/askdocs/htmltomarkdown"
	apihttp "github.com/askdocs/askdocs/http"
	"github.com/askdocs/askdocs/ingest"
	"github.com/askdocs/askdocs/pgvector"
	"github.com/askdocs/askdocs/query"
	"github.com/askdocs/askdocs/readability"
	"github.com/askdocs/askdocs/rod"
	"github.com/askdocs/askdocs/sqlite"
	"github.com/askdocs/askdocs/trafilatura"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Overrides environment-derived configuration when non-nil.
	// Set before calling Run() in tests.
	Config *askdocs.Config

	store   askdocs.VectorStore
	history *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources opened during Run.
func (m *Main) Close() error {
	if m.history != nil {
		_ = m.history.Close()
	}
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("askdocs"),
		kong.Description("Crawl a documentation site and answer questions about it."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'askdocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return err
	}
	deps.Config = *cfg

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = logger

	if cfg.HistoryPath != "" && (cmd == "ingest" || cmd == "runs") {
		db := sqlite.NewDB(cfg.HistoryPath)
		if err := db.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set HISTORY_PATH to a writable location, or empty to disable run history")
			return fmt.Errorf("failed to open run history at %q: %w", cfg.HistoryPath, err)
		}
		m.history = db
		deps.History = sqlite.NewRunHistory(db)
	}
	defer m.Close()

	if cmd == "runs" {
		return kongCtx.Run(deps)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	m.store = store

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid. Get a key at https://aistudio.google.com/apikey")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	embedder := gemini.NewEmbedder(client, cfg.EmbedModel, cfg.EmbedDimension)
	llm := gemini.NewLLM(client, cfg.GenModel)

	if cmd == "ingest" {
		splitter, err := askdocs.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
		if err != nil {
			return err
		}

		fetcher, err := newFetcher(cfg, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: FETCHER=browser requires Chrome or Chromium to be installed")
			return err
		}
		defer fetcher.Close()

		var archive askdocs.DocumentArchive
		if cli.Ingest.Archive != "" {
			archive = fs.NewArchive(cli.Ingest.Archive)
		}

		deps.Pipeline = &ingest.Pipeline{
			Crawler: &crawl.Crawler{
				Fetcher:  fetcher,
				Parser:   goquery.NewParser(),
				Limiter:  crawl.NewDomainLimiter(cfg.CrawlDelay),
				Sitemaps: apihttp.NewSitemapService(nil),
				MaxDepth: cfg.MaxDepth,
				MaxPages: cfg.MaxPages,
				Logger:   logger,
			},
			Extractors:  []askdocs.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
			Converter:   htmltomarkdown.NewConverter(),
			Splitter:    splitter,
			Embedder:    embedder,
			Store:       store,
			Collection:  cfg.CollectionName,
			Archive:     archive,
			History:     deps.History,
			BatchSize:   cfg.BatchSize,
			Concurrency: cfg.EmbedConcurrency,
			Logger:      logger,
		}
	}

	if cmd == "ask" || cmd == "serve" {
		deps.Asker = &query.Pipeline{
			Retriever: &query.Retriever{
				Embedder:      embedder,
				Store:         store,
				Collection:    cfg.CollectionName,
				TopK:          cfg.TopK,
				MinScore:      &cfg.MinScore,
				ContextBudget: cfg.ContextBudget,
				Logger:        logger,
			},
			Generator: &query.Generator{LLM: llm},
			Logger:    logger,
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig reads configuration from the environment, with a .env
// file as an optional convenience for local development.
func (m *Main) loadConfig() (*askdocs.Config, error) {
	if m.Config != nil {
		return m.Config, nil
	}

	_ = godotenv.Load()

	var cfg askdocs.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), askdocs.Errorf(askdocs.EINVALID, "invalid LOG_LEVEL %q", level)
	}
	out := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}

func openStore(ctx context.Context, cfg *askdocs.Config) (askdocs.VectorStore, error) {
	switch cfg.Store {
	case "postgres":
		return pgvector.NewStore(ctx, cfg.DatabaseURL)
	default:
		return chromem.NewPersistentStore(cfg.ChromemPath)
	}
}

func newFetcher(cfg *askdocs.Config, logger zerolog.Logger) (askdocs.Fetcher, error) {
	if cfg.Fetcher == "browser" {
		browser, err := rod.NewFetcher()
		if err != nil {
			return nil, err
		}
		return rod.NewLoggingFetcher(browser, logger), nil
	}
	return apihttp.NewFetcher(), nil
}
