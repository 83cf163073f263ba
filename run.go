package askdocs

import (
	"context"
	"time"
)

// RunRecord is the persisted summary of one ingestion run.
type RunRecord struct {
	ID             string
	Seed           string
	PagesVisited   int
	PagesSkipped   int
	PagesFailed    int
	ChunksEmbedded int
	ChunksFailed   int
	Started        time.Time
	Finished       time.Time
}

// RunHistory stores ingestion run summaries so operators can see what
// was indexed, when, and how much of it failed.
type RunHistory interface {
	// SaveRun persists a completed run.
	SaveRun(ctx context.Context, rec *RunRecord) error

	// RecentRuns returns the most recent runs, newest first, up to
	// limit.
	RecentRuns(ctx context.Context, limit int) ([]*RunRecord, error)
}
