package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scorecard/internal/domain/scorecard"
	"scorecard/internal/platform/report"
)

func newRankingsCmd() *cobra.Command {
	var (
		flags   queryFlags
		top     int
		low     int
		pdfPath string
	)

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show the top and bottom performers in scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := flags.query(cmd)
			q.Top = scorecard.ClampLimit(top)
			q.Low = scorecard.ClampLimit(low)
			return runRankings(cmd.Context(), cmd.OutOrStdout(), rankingsOpts{outputFmt: flags.outputFmt, pdfPath: pdfPath}, q)
		},
	}
	flags.register(cmd, scorecard.PresetManager)
	cmd.Flags().IntVar(&top, "top", scorecard.DefaultRankLimit, "Number of top performers (1-50)")
	cmd.Flags().IntVar(&low, "low", scorecard.DefaultRankLimit, "Number of low performers (1-50)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write a PDF report to this path")
	return cmd
}

type rankingsOpts struct {
	outputFmt string
	pdfPath   string
}

func runRankings(ctx context.Context, out io.Writer, opts rankingsOpts, q scorecard.Query) error {
	service, pool, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := service.Rankings(ctx, q)
	if err != nil {
		return err
	}

	if opts.pdfPath != "" {
		body, err := report.RankingsPDF("Performance rankings", result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfPath, body, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", opts.pdfPath)
	}

	if opts.outputFmt == "json" {
		return writeJSON(out, result)
	}
	return writeRankings(out, result)
}

func writeRankings(out io.Writer, r scorecard.Rankings) error {
	fmt.Fprintf(out, "Employees: %d\n", r.Summary.Count)
	if r.Summary.Count == 0 {
		return nil
	}
	fmt.Fprintf(out, "Average: %d  Top cutoff: %d  Low cutoff: %d\n\n", *r.Summary.AvgScore, *r.Summary.TopCutoff, *r.Summary.LowCutoff)
	fmt.Fprintln(out, "Top")
	if err := writeItems(out, r.Top); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nLow")
	return writeItems(out, r.Low)
}
