// Package ingest orchestrates the indexing pipeline: crawl a
// documentation site, extract and convert page content, split it into
// chunks, embed them, and upsert the vectors into the store.
package ingest

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/crawl"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultMinTextLength drops pages whose converted text is too short
// to be worth indexing, such as redirect stubs and empty index pages.
const DefaultMinTextLength = 50

// Pipeline runs a full ingestion pass against a documentation site.
// Extractors are tried in order until one returns content, so a
// readability fallback can back up the primary extractor.
type Pipeline struct {
	Crawler    *crawl.Crawler
	Extractors []askdocs.Extractor
	Converter  askdocs.Converter
	Splitter   *askdocs.Splitter
	Embedder   askdocs.Embedder
	Store      askdocs.VectorStore
	Collection string

	// Archive, when set, additionally saves each converted document as
	// a file. History, when set, records a summary of each run.
	// Failures in either are logged and do not fail the run.
	Archive askdocs.DocumentArchive
	History askdocs.RunHistory

	BatchSize     int
	Concurrency   int
	MinTextLength int
	AbortOnError  bool
	RetryDelays   []time.Duration
	Logger        zerolog.Logger
}

// Report summarizes an ingestion run.
type Report struct {
	RunID          uuid.UUID
	Seed           string
	PagesVisited   int
	PagesSkipped   int
	PagesFailed    int
	ChunksEmbedded int
	ChunksFailed   int
	Started        time.Time
	Finished       time.Time
}

// Run crawls from the seed URL and indexes every page it can extract
// content from. Individual page and batch failures are counted and
// skipped unless AbortOnError is set; the returned error is non-nil
// only for failures that invalidate the whole run.
func (p *Pipeline) Run(ctx context.Context, seed string) (*Report, error) {
	report := &Report{
		RunID:   uuid.New(),
		Seed:    seed,
		Started: time.Now().UTC(),
	}
	logger := p.Logger.With().Stringer("run_id", report.RunID).Logger()

	if err := p.Store.EnsureCollection(ctx, p.Collection, p.Embedder.Dimension()); err != nil {
		return nil, err
	}

	run, err := p.Crawler.Start(ctx, seed)
	if err != nil {
		return nil, err
	}

	var embedded, failed atomic.Int64

	for {
		page, ok, err := run.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		report.PagesVisited++

		if err := p.indexPage(ctx, logger, page, &embedded, &failed); err != nil {
			if p.AbortOnError {
				return nil, err
			}
			report.PagesSkipped++
			logger.Warn().Err(err).Str("url", page.URL).Msg("page skipped")
		}
	}

	report.PagesFailed = len(run.Failures())
	report.ChunksEmbedded = int(embedded.Load())
	report.ChunksFailed = int(failed.Load())
	report.Finished = time.Now().UTC()

	logger.Info().
		Int("pages_visited", report.PagesVisited).
		Int("pages_skipped", report.PagesSkipped).
		Int("pages_failed", report.PagesFailed).
		Int("chunks_embedded", report.ChunksEmbedded).
		Int("chunks_failed", report.ChunksFailed).
		Dur("took", report.Finished.Sub(report.Started)).
		Msg("ingestion finished")

	if p.History != nil {
		if err := p.History.SaveRun(ctx, report.Record()); err != nil {
			logger.Warn().Err(err).Msg("failed to record run history")
		}
	}

	return report, nil
}

// Record converts the report to its persisted form.
func (r *Report) Record() *askdocs.RunRecord {
	return &askdocs.RunRecord{
		ID:             r.RunID.String(),
		Seed:           r.Seed,
		PagesVisited:   r.PagesVisited,
		PagesSkipped:   r.PagesSkipped,
		PagesFailed:    r.PagesFailed,
		ChunksEmbedded: r.ChunksEmbedded,
		ChunksFailed:   r.ChunksFailed,
		Started:        r.Started,
		Finished:       r.Finished,
	}
}

// indexPage extracts, chunks, embeds, and stores a single page.
func (p *Pipeline) indexPage(ctx context.Context, logger zerolog.Logger, page *askdocs.Page, embedded, failed *atomic.Int64) error {
	doc, err := p.extract(page)
	if err != nil {
		return err
	}

	minLen := p.MinTextLength
	if minLen <= 0 {
		minLen = DefaultMinTextLength
	}
	if len(doc.Text) < minLen {
		logger.Debug().Str("url", page.URL).Int("len", len(doc.Text)).Msg("page too short, not indexed")
		return p.deleteStale(ctx, page.URL, 0)
	}

	if p.Archive != nil {
		if err := p.Archive.SaveDocument(ctx, doc); err != nil {
			logger.Warn().Err(err).Str("url", doc.URL).Msg("failed to archive document")
		}
	}

	chunks := p.Splitter.Split(doc)
	if len(chunks) == 0 {
		return p.deleteStale(ctx, page.URL, 0)
	}

	batchSize := p.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(chunks); start += batchSize {
		batch := chunks[start:min(start+batchSize, len(chunks))]
		g.Go(func() error {
			if err := p.indexBatch(gctx, doc, batch); err != nil {
				failed.Add(int64(len(batch)))
				if p.AbortOnError {
					return err
				}
				logger.Warn().Err(err).Str("url", doc.URL).Int("chunks", len(batch)).Msg("batch failed")
				return nil
			}
			embedded.Add(int64(len(batch)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().Str("url", doc.URL).Int("chunks", len(chunks)).Msg("page indexed")
	return p.deleteStale(ctx, doc.URL, len(chunks))
}

// indexBatch embeds one batch of chunks and upserts the points.
func (p *Pipeline) indexBatch(ctx context.Context, doc *askdocs.Document, batch []askdocs.Chunk) error {
	delays := p.RetryDelays
	if delays == nil {
		delays = askdocs.DefaultRetryDelays()
	}

	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	var vectors [][]float32
	err := askdocs.Retry(ctx, delays, func(ctx context.Context) error {
		var eerr error
		vectors, eerr = p.Embedder.Embed(ctx, texts)
		return eerr
	})
	if err != nil {
		return err
	}

	points := make([]askdocs.VectorPoint, len(batch))
	for i, c := range batch {
		points[i] = askdocs.VectorPoint{
			ID:     c.ID,
			Vector: vectors[i],
			Payload: askdocs.PointPayload{
				URL:        c.DocumentURL,
				Title:      doc.Title,
				ChunkIndex: c.Index,
				Text:       c.Text,
			},
		}
	}

	return askdocs.Retry(ctx, delays, func(ctx context.Context) error {
		return p.Store.Upsert(ctx, p.Collection, points)
	})
}

// extract runs the extractor chain and converts the result to a
// Document with Markdown text.
func (p *Pipeline) extract(page *askdocs.Page) (*askdocs.Document, error) {
	var lastErr error
	for _, ext := range p.Extractors {
		result, err := ext.Extract(page.HTML)
		if err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(result.ContentHTML) == "" {
			lastErr = askdocs.Errorf(askdocs.ENOTFOUND, "no content extracted from %s", page.URL)
			continue
		}

		markdown, err := p.Converter.Convert(result.ContentHTML)
		if err != nil {
			return nil, err
		}

		title := result.Title
		if title == "" {
			title = page.Title
		}
		return &askdocs.Document{
			URL:   page.URL,
			Title: title,
			Text:  strings.TrimSpace(markdown),
		}, nil
	}
	if lastErr == nil {
		lastErr = askdocs.Errorf(askdocs.EINTERNAL, "no extractors configured")
	}
	return nil, lastErr
}

// deleteStale drops chunks past the current count for a URL, covering
// pages that shrank or emptied since the previous run.
func (p *Pipeline) deleteStale(ctx context.Context, url string, keep int) error {
	return p.Store.DeleteStale(ctx, p.Collection, url, keep)
}
