package main

import (
	"fmt"

	"github.com/askdocs/askdocs"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if deps.History == nil {
		fmt.Fprintln(deps.Stderr, "Run history is disabled. Set HISTORY_PATH to enable it.")
		return askdocs.Errorf(askdocs.EINVALID, "run history is disabled")
	}

	runs, err := deps.History.RecentRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askdocs.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Run 'askdocs ingest' first.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.Started.Local().Format("2006-01-02 15:04"), r.ID, r.Seed)
		fmt.Fprintf(deps.Stdout, "    pages: %d visited, %d skipped, %d failed; chunks: %d embedded, %d failed; took %s\n",
			r.PagesVisited, r.PagesSkipped, r.PagesFailed,
			r.ChunksEmbedded, r.ChunksFailed,
			r.Finished.Sub(r.Started).Round(timePrecision))
	}
	return nil
}
