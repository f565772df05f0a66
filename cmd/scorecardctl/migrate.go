package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"scorecard/internal/platform/config"
	"scorecard/internal/platform/db"
)

func newMigrateCmd() *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back) the read-model schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), cmd.OutOrStdout(), down)
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "Roll back this many migrations instead of applying")
	return cmd
}

func runMigrate(ctx context.Context, out io.Writer, down int) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	if down > 0 {
		err = db.MigrateDown(pool, down)
	} else {
		err = db.Migrate(pool)
	}
	if err != nil {
		return err
	}

	version, dirty, err := db.Version(pool)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
