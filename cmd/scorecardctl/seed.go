package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"scorecard/internal/platform/config"
	"scorecard/internal/platform/db"
)

func newSeedCmd() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a small demo dataset for one tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout(), tenantID)
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func runSeed(ctx context.Context, out io.Writer, tenantID string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	result, err := db.Seed(ctx, pool, tenantID, db.DemoDataset(), time.Now().UTC())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d departments, %d users, %d tasks\n", result.Departments, result.Users, result.Tasks)
	return nil
}
