package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"scorecard/internal/domain/scorecard"
	"scorecard/internal/platform/config"
	"scorecard/internal/platform/db"
	"scorecard/internal/platform/jobs"
	"scorecard/internal/platform/logging"
	"scorecard/internal/platform/metrics"
	"scorecard/internal/transport/http/api"
	scorecardhandler "scorecard/internal/transport/http/handlers/scorecard"
	"scorecard/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	DB        *pgxpool.Pool
	Scorecard *scorecard.Service
	Jobs      *jobs.Service
	Router    http.Handler
}

// New connects to the database, applies migrations when enabled and builds
// the router. Background jobs are not started; see Run.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	metrics.SetEnabled(cfg.MetricsEnabled)

	presets, err := config.LoadPresets(cfg.WeightPresetsFile)
	if err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	store := scorecard.NewStore(pool)
	service := scorecard.NewService(store,
		scorecard.WithFetchConcurrency(cfg.FetchConcurrency),
		scorecard.WithDefaultWindowDays(cfg.DefaultWindowDays),
		scorecard.WithPresets(presets),
	)

	app := &App{
		Config:    cfg,
		DB:        pool,
		Scorecard: service,
		Jobs:      jobs.New(service, store, cfg.GaugeRefreshInterval),
	}
	app.Router = app.routes()
	return app, nil
}

func (a *App) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database not ready", middleware.GetRequestID(r.Context()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Handle("/metrics", metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		scorecardhandler.NewHandler(a.Scorecard, a.Config.RateLimitPerMinute).RegisterRoutes(r)
	})

	return router
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run() error {
	cfg := config.Load()
	closer := logging.Setup(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("scorecard server listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("scorecard server shutting down")
	return srv.Shutdown(shutdownCtx)
}
