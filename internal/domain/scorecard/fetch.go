package scorecard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"scorecard/internal/platform/metrics"
)

const DefaultFetchConcurrency = 8

// Fetcher loads counters for many subjects with bounded parallelism.
type Fetcher struct {
	Tasks TaskStore
	Limit int
}

func NewFetcher(tasks TaskStore, limit int) *Fetcher {
	if limit < 1 {
		limit = DefaultFetchConcurrency
	}
	return &Fetcher{Tasks: tasks, Limit: limit}
}

// Fetch returns one entry per subject in input order. A failing subject is
// scored on zero counters; only cancellation of ctx fails the batch.
func (f *Fetcher) Fetch(ctx context.Context, tenantID string, subjects []Subject, window WindowSpec, now time.Time) ([]SubjectMetrics, error) {
	out := make([]SubjectMetrics, len(subjects))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(max(f.Limit, 1))

	for i, subject := range subjects {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			raw, err := f.Tasks.SubjectCounters(gctx, tenantID, subject.ID, window, now)
			metrics.RecordFetchDuration(time.Since(start))
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.Warn("subject counters fetch failed", "tenantId", tenantID, "subjectId", subject.ID, "err", err)
				metrics.RecordFetchFailure()
				raw = RawMetrics{}
			}
			out[i] = SubjectMetrics{Subject: subject, Raw: raw}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
