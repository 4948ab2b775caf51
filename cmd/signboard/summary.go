package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/signboard/internal/config"
	"github.com/nao1215/signboard/internal/pipeline"
	"github.com/nao1215/signboard/internal/report"
)

// addReportFlags registers the output format flags shared by the report
// commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --xlsx)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --xlsx)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("xlsx", "",
		"Write an Excel workbook to the specified file path")
}

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [source...]",
		Short: "Show signature totals and the per-party ranking",
		Long: `Summary loads one or more sheet sources and prints, for each one, the
overall signature totals and the parties ranked by the share of members
who signed. Parties with the same share are ordered by name.

Several sources are loaded concurrently (see --concurrency).

Examples:
  # Summarize the built-in petition sheet
  signboard summary

  # Summarize two configured sources as Markdown with pie charts
  signboard summary default senate --markdown -o report.md

  # Summarize another spreadsheet
  signboard summary --sheet-id 1AbC... --gid 0`,
		Args: cobra.ArbitraryArgs,
		RunE: runSummaryCmd,
	}

	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of sources loaded at the same time")
	addReportFlags(cmd)

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		if a.cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return err
		}
		if a.cfg.Concurrency <= 0 {
			return fmt.Errorf("configuration error: %w", config.ErrInvalidConcurrency)
		}
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return a.runSummary(ctx, cmd)
}

// runSummary loads every configured source and writes the summary report.
func (a *app) runSummary(ctx context.Context, cmd *cobra.Command) error {
	bp := pipeline.NewBatchProcessor(a.loader,
		pipeline.WithConcurrency(a.cfg.Concurrency),
		pipeline.WithBatchLogger(a.logger),
	)

	snaps, err := bp.ProcessBatch(ctx, a.cfg.Sources)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("summary interrupted: %w", err)
		}
		return err
	}

	summaries := report.NewSourceSummaries(snaps)
	if err := a.writeReport(cmd, func(w report.Writer) (int, error) {
		return w.WriteSummary(summaries)
	}); err != nil {
		return err
	}

	return loadFailures(snaps)
}
