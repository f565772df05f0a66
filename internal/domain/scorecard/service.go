package scorecard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scorecard/internal/platform/metrics"
)

type Service struct {
	store       StoreAPI
	fetcher     *Fetcher
	presets     Presets
	defaultDays int
	now         func() time.Time
}

type Option func(*Service)

func WithFetchConcurrency(limit int) Option {
	return func(s *Service) {
		s.fetcher = NewFetcher(s.store, limit)
	}
}

func WithPresets(presets Presets) Option {
	return func(s *Service) {
		if len(presets) > 0 {
			s.presets = presets
		}
	}
}

func WithDefaultWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.defaultDays = days
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store StoreAPI, opts ...Option) *Service {
	s := &Service{
		store:       store,
		presets:     DefaultPresets(),
		defaultDays: DefaultWindowDays,
		now:         time.Now,
	}
	s.fetcher = NewFetcher(store, DefaultFetchConcurrency)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query describes one evaluation request after transport parsing.
type Query struct {
	TenantID  string
	Scope     ScopeQuery
	From      string
	To        string
	Preset    string
	Overrides WeightOverrides
	Top       int
	Low       int
	// SelfView marks a subject looking at their own scorecard.
	SelfView  bool
}

func (s *Service) Presets() Presets {
	out := Presets{}
	for name := range DefaultPresets() {
		out[name] = s.presets.Get(name)
	}
	for name := range s.presets {
		out[name] = s.presets.Get(name)
	}
	return out
}

func (s *Service) Scorecards(ctx context.Context, q Query) (Scorecards, error) {
	results, window, mode, err := s.evaluate(ctx, q)
	if err != nil {
		return Scorecards{}, err
	}
	return BuildScorecards(results, window, mode), nil
}

func (s *Service) Rankings(ctx context.Context, q Query) (Rankings, error) {
	results, window, mode, err := s.evaluate(ctx, q)
	if err != nil {
		return Rankings{}, err
	}
	rankings := Rank(results, window, q.Top, q.Low)
	if len(results) > 0 {
		rankings.Normalization = mode
	}
	return rankings, nil
}

func (s *Service) evaluate(ctx context.Context, q Query) ([]ScoreResult, WindowSpec, string, error) {
	now := s.now()
	window := ResolveWindow(q.From, q.To, now, s.defaultDays)
	preset := q.Preset
	if preset == "" {
		preset = PresetManager
	}
	weights := s.presets.Get(preset).With(q.Overrides)

	subjects, err := s.resolveScope(ctx, q.TenantID, q.Scope)
	if err != nil {
		return nil, window, "", err
	}
	if len(subjects) == 0 {
		metrics.RecordCohort(preset, nil)
		return []ScoreResult{}, window, "", nil
	}

	cohort, err := s.fetcher.Fetch(ctx, q.TenantID, subjects, window, now)
	if err != nil {
		return nil, window, "", err
	}

	results, mode := ScoreCohort(cohort, window, weights, q.SelfView)
	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}
	metrics.RecordCohort(preset, scores)
	return results, window, mode, nil
}

func (s *Service) resolveScope(ctx context.Context, tenantID string, scope ScopeQuery) ([]Subject, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if scope.Kind == ScopeDepartment {
		exists, err := s.store.DepartmentExists(ctx, tenantID, scope.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScopeResolution, err)
		}
		if !exists {
			slog.Debug("unknown department scope", "tenantId", tenantID, "departmentId", scope.ID)
			return nil, nil
		}
	}
	subjects, err := s.store.ListSubjects(ctx, tenantID, scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScopeResolution, err)
	}
	return subjects, nil
}
