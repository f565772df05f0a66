package jobs

import (
	"context"
	"log/slog"
	"time"

	"scorecard/internal/domain/scorecard"
	"scorecard/internal/platform/metrics"
)

const JobGaugeRefresh = "department_gauge_refresh"

// Ranker computes rankings for one scope.
type Ranker interface {
	Rankings(ctx context.Context, q scorecard.Query) (scorecard.Rankings, error)
}

// Catalog enumerates tenants and their departments.
type Catalog interface {
	ListTenants(ctx context.Context) ([]string, error)
	ListDepartments(ctx context.Context, tenantID string) ([]scorecard.Department, error)
}

type Service struct {
	Ranker   Ranker
	Catalog  Catalog
	Interval time.Duration
	queue    chan job
}

type job struct {
	Type     string
	TenantID string
	Run      func(context.Context) (any, error)
}

func New(ranker Ranker, catalog Catalog, interval time.Duration) *Service {
	return &Service{
		Ranker:   ranker,
		Catalog:  catalog,
		Interval: interval,
		queue:    make(chan job, 128),
	}
}

// Start runs the worker and, when Interval is positive, the refresh schedule.
// Both stop when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Interval > 0 {
		go s.scheduleRefresh(ctx, s.Interval)
	}
}

func (s *Service) Enqueue(jobType, tenantID string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, TenantID: tenantID, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType, "tenantId", tenantID)
		return false
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "tenantId", j.TenantID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	start := time.Now()
	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	metrics.RecordRefreshRun(status)
	slog.Debug("job run finished",
		"jobType", j.Type,
		"tenantId", j.TenantID,
		"status", status,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return details, err
}

func (s *Service) scheduleRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueueAll(ctx)
		}
	}
}

func (s *Service) enqueueAll(ctx context.Context) {
	tenants, err := s.Catalog.ListTenants(ctx)
	if err != nil {
		slog.Warn("gauge refresh tenant lookup failed", "err", err)
		return
	}
	for _, tenantID := range tenants {
		s.Enqueue(JobGaugeRefresh, tenantID, func(ctx context.Context) (any, error) {
			return s.RefreshTenant(ctx, tenantID)
		})
	}
}

// RefreshTenant publishes the manager-preset average score of every
// department in the tenant and drops the gauge of departments left without
// scored members. It returns the averages keyed by department ID.
func (s *Service) RefreshTenant(ctx context.Context, tenantID string) (map[string]int, error) {
	departments, err := s.Catalog.ListDepartments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(departments))
	for _, dept := range departments {
		rankings, err := s.Ranker.Rankings(ctx, scorecard.Query{
			TenantID: tenantID,
			Scope:    scorecard.DepartmentScope(dept.ID),
			Preset:   scorecard.PresetManager,
			Top:      scorecard.MinRankLimit,
			Low:      scorecard.MinRankLimit,
		})
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			slog.Warn("department refresh failed", "tenantId", tenantID, "departmentId", dept.ID, "err", err)
			continue
		}
		if rankings.Summary.AvgScore == nil {
			metrics.ClearDepartmentAverage(tenantID, dept.ID)
			continue
		}
		out[dept.ID] = *rankings.Summary.AvgScore
		metrics.UpdateDepartmentAverage(tenantID, dept.ID, dept.Name, *rankings.Summary.AvgScore)
	}
	return out, nil
}
