package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scorecard/internal/domain/scorecard"
)

func newScorecardsCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "scorecards",
		Short: "Score every employee in scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScorecards(cmd.Context(), cmd.OutOrStdout(), flags.outputFmt, flags.query(cmd))
		},
	}
	flags.register(cmd, scorecard.PresetManager)
	return cmd
}

func runScorecards(ctx context.Context, out io.Writer, outputFmt string, q scorecard.Query) error {
	service, pool, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := service.Scorecards(ctx, q)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Window: %s..%s (%d weeks)\n", result.Window.From.Format("2006-01-02"), result.Window.To.Format("2006-01-02"), result.Window.Weeks)
	if outputFmt == "json" {
		return writeJSON(out, result)
	}
	return writeItems(out, result.Items)
}

func writeItems(out io.Writer, items []scorecard.ScorecardItem) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tUSER\tDEPARTMENT\tCOMPLETED\tPENDING\tON TIME\tTHROUGHPUT\tSCORE")
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d%%\t%.2f\t%d\n",
			i+1,
			item.Username,
			item.Department,
			item.Metrics.Completed,
			item.Metrics.Pending,
			item.Metrics.OnTimeRate,
			item.Metrics.Throughput,
			item.Score,
		)
	}
	return tw.Flush()
}
