package scorecardhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scorecard/internal/domain/auth"
	"scorecard/internal/domain/scorecard"
	"scorecard/internal/platform/report"
	"scorecard/internal/transport/http/api"
	"scorecard/internal/transport/http/middleware"
	"scorecard/internal/transport/http/shared"
)

// Engine is the part of scorecard.Service the handlers depend on.
type Engine interface {
	Scorecards(ctx context.Context, q scorecard.Query) (scorecard.Scorecards, error)
	Rankings(ctx context.Context, q scorecard.Query) (scorecard.Rankings, error)
	Presets() scorecard.Presets
}

type Handler struct {
	Service            Engine
	RateLimitPerMinute int
}

func NewHandler(service Engine, rateLimitPerMinute int) *Handler {
	return &Handler{Service: service, RateLimitPerMinute: rateLimitPerMinute}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Use(middleware.RequireRole())
		r.Use(middleware.RateLimit(h.RateLimitPerMinute, time.Minute))

		r.Get("/scorecards/me", h.handleMyScorecard)
		r.Get("/presets", h.handlePresets)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.ReviewerRoles...))
			r.Get("/scorecards", h.handleScorecards)
			r.Get("/rankings", h.handleRankings)
			r.With(middleware.RateLimit(h.RateLimitPerMinute, time.Minute, middleware.WithKeyFunc(middleware.TenantKey))).
				Get("/rankings/export.pdf", h.handleRankingsPDF)
		})
	})
}

func (h *Handler) handleScorecards(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	q := parseQuery(r, user.TenantID, scorecard.PresetManager)
	q.Scope = scorecard.ScopeFromDepartment(r.URL.Query().Get("department"))

	out, err := h.Service.Scorecards(r.Context(), q)
	if err != nil {
		writeEngineError(w, r, "scorecards", err)
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyScorecard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	q := parseQuery(r, user.TenantID, scorecard.PresetSelf)
	q.Scope = scorecard.EmployeeScope(user.UserID)
	q.SelfView = true

	out, err := h.Service.Scorecards(r.Context(), q)
	if err != nil {
		writeEngineError(w, r, "self scorecard", err)
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRankings(w http.ResponseWriter, r *http.Request) {
	out, ok := h.rankings(w, r)
	if !ok {
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRankingsPDF(w http.ResponseWriter, r *http.Request) {
	out, ok := h.rankings(w, r)
	if !ok {
		return
	}
	body, err := report.RankingsPDF("Performance rankings", out)
	if err != nil {
		slog.Warn("rankings pdf failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render rankings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Attachment(w, "application/pdf", "rankings.pdf", body, middleware.GetRequestID(r.Context()))
}

func (h *Handler) rankings(w http.ResponseWriter, r *http.Request) (scorecard.Rankings, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return scorecard.Rankings{}, false
	}

	q := parseQuery(r, user.TenantID, scorecard.PresetManager)
	q.Scope = scorecard.ScopeFromDepartment(r.URL.Query().Get("department"))
	q.Top = scorecard.ClampLimit(shared.QueryInt(r, "top", scorecard.DefaultRankLimit))
	q.Low = scorecard.ClampLimit(shared.QueryInt(r, "low", scorecard.DefaultRankLimit))

	out, err := h.Service.Rankings(r.Context(), q)
	if err != nil {
		writeEngineError(w, r, "rankings", err)
		return scorecard.Rankings{}, false
	}
	return out, true
}

func (h *Handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Presets(), middleware.GetRequestID(r.Context()))
}

func parseQuery(r *http.Request, tenantID, preset string) scorecard.Query {
	values := r.URL.Query()
	return scorecard.Query{
		TenantID: tenantID,
		From:     values.Get("from"),
		To:       values.Get("to"),
		Preset:   preset,
		Overrides: scorecard.WeightOverrides{
			OnTime:     shared.QueryFloat(r, "wOnTime"),
			Throughput: shared.QueryFloat(r, "wThroughput"),
			Completion: shared.QueryFloat(r, "wCompletion"),
			Penalty:    shared.QueryFloat(r, "wPenalty"),
		},
	}
}

func writeEngineError(w http.ResponseWriter, r *http.Request, op string, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, scorecard.ErrInvalidScope):
		api.Fail(w, http.StatusBadRequest, "invalid_scope", "invalid scope", requestID)
	case errors.Is(err, scorecard.ErrScopeResolution):
		slog.Warn(op+" scope resolution failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "scope_resolution_failed", "failed to resolve scope", requestID)
	case errors.Is(err, context.DeadlineExceeded):
		api.Fail(w, http.StatusGatewayTimeout, "timeout", "request timed out", requestID)
	case errors.Is(err, context.Canceled):
		slog.Info(op+" cancelled", "requestId", requestID)
		api.Fail(w, http.StatusServiceUnavailable, "request_cancelled", "request cancelled", requestID)
	default:
		slog.Warn(op+" failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "scorecard_failed", "failed to compute scorecards", requestID)
	}
}
