package main

import (
	"fmt"
	"time"

	"github.com/askdocs/askdocs"
)

// timePrecision trims run durations to something readable.
const timePrecision = 100 * time.Millisecond

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	seed := c.URL
	if seed == "" {
		seed = deps.Config.BaseURL
	}

	deps.Pipeline.AbortOnError = c.Strict

	fmt.Fprintf(deps.Stdout, "Indexing %s\n", seed)

	report, err := deps.Pipeline.Run(deps.Ctx, seed)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s finished in %s\n", report.RunID, report.Finished.Sub(report.Started).Round(timePrecision))
	fmt.Fprintf(deps.Stdout, "  Pages: %d indexed, %d skipped, %d failed\n",
		report.PagesVisited-report.PagesSkipped, report.PagesSkipped, report.PagesFailed)
	fmt.Fprintf(deps.Stdout, "  Chunks: %d embedded, %d failed\n", report.ChunksEmbedded, report.ChunksFailed)
	return nil
}
