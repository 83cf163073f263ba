package sqlite

import (
	"context"
	"time"

	"github.com/askdocs/askdocs"
)

var _ askdocs.RunHistory = (*RunHistory)(nil)

// RunHistory implements askdocs.RunHistory on a SQLite database.
type RunHistory struct {
	db *DB
}

// NewRunHistory creates a new RunHistory backed by db.
func NewRunHistory(db *DB) *RunHistory {
	return &RunHistory{db: db}
}

// SaveRun persists a completed ingestion run.
func (h *RunHistory) SaveRun(ctx context.Context, rec *askdocs.RunRecord) error {
	if rec.ID == "" {
		return askdocs.Errorf(askdocs.EINVALID, "run ID is required")
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, pages_visited, pages_skipped, pages_failed, chunks_embedded, chunks_failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Seed,
		rec.PagesVisited,
		rec.PagesSkipped,
		rec.PagesFailed,
		rec.ChunksEmbedded,
		rec.ChunksFailed,
		rec.Started.UTC().Format(time.RFC3339Nano),
		rec.Finished.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return askdocs.Errorf(askdocs.EINTERNAL, "failed to save run: %v", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (h *RunHistory) RecentRuns(ctx context.Context, limit int) ([]*askdocs.RunRecord, error) {
	if limit <= 0 {
		return []*askdocs.RunRecord{}, nil
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, seed, pages_visited, pages_skipped, pages_failed, chunks_embedded, chunks_failed, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "failed to query runs: %v", err)
	}
	defer rows.Close()

	records := []*askdocs.RunRecord{}
	for rows.Next() {
		var rec askdocs.RunRecord
		var started, finished string
		if err := rows.Scan(
			&rec.ID,
			&rec.Seed,
			&rec.PagesVisited,
			&rec.PagesSkipped,
			&rec.PagesFailed,
			&rec.ChunksEmbedded,
			&rec.ChunksFailed,
			&started,
			&finished,
		); err != nil {
			return nil, askdocs.Errorf(askdocs.EINTERNAL, "failed to scan run: %v", err)
		}
		if rec.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, askdocs.Errorf(askdocs.EINTERNAL, "failed to parse started_at: %v", err)
		}
		if rec.Finished, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, askdocs.Errorf(askdocs.EINTERNAL, "failed to parse finished_at: %v", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "failed to read runs: %v", err)
	}
	return records, nil
}
