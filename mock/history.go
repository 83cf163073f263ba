package mock

import (
	"context"

	"github.com/askdocs/askdocs"
)

var _ askdocs.RunHistory = (*RunHistory)(nil)

// RunHistory is a mock implementation of askdocs.RunHistory.
type RunHistory struct {
	SaveRunFn    func(ctx context.Context, rec *askdocs.RunRecord) error
	RecentRunsFn func(ctx context.Context, limit int) ([]*askdocs.RunRecord, error)
}

func (h *RunHistory) SaveRun(ctx context.Context, rec *askdocs.RunRecord) error {
	return h.SaveRunFn(ctx, rec)
}

func (h *RunHistory) RecentRuns(ctx context.Context, limit int) ([]*askdocs.RunRecord, error) {
	return h.RecentRunsFn(ctx, limit)
}
