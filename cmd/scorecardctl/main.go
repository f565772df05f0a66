// Package main provides the scorecardctl operator CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"scorecard/internal/domain/scorecard"
	"scorecard/internal/platform/config"
	"scorecard/internal/platform/db"
	"scorecard/internal/platform/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scorecardctl",
		Short: "Compute performance scorecards and rankings from the command line",
		Long: `scorecardctl runs the scorecard engine directly against the task database.
Connection settings come from the same environment as the server (DATABASE_URL, ...).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newScorecardsCmd(),
		newRankingsCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newTokenCmd(),
	)
	return rootCmd
}

// openEngine wires the engine the same way the server does. Logs go to
// stderr so stdout stays parseable.
func openEngine(ctx context.Context) (*scorecard.Service, *pgxpool.Pool, error) {
	cfg := config.Load()
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	presets, err := config.LoadPresets(cfg.WeightPresetsFile)
	if err != nil {
		return nil, nil, err
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	service := scorecard.NewService(scorecard.NewStore(pool),
		scorecard.WithFetchConcurrency(cfg.FetchConcurrency),
		scorecard.WithDefaultWindowDays(cfg.DefaultWindowDays),
		scorecard.WithPresets(presets),
	)
	return service, pool, nil
}
