package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/olistboard/internal/app"
	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/usecases"
	"github.com/samirrijal/olistboard/internal/workflows"
)

var (
	reportStart, reportEnd string
	reportWait             bool
	reportLocal            bool
)

// snapshotReporter builds, renders and publishes a snapshot in one call.
type snapshotReporter interface {
	Report(ctx context.Context, r domain.DateRange) (*domain.Snapshot, error)
}

// runLocalReport does the work of the report workflow in-process.
func runLocalReport(ctx context.Context, w io.Writer, format string, an *usecases.AnalyticsService, rep snapshotReporter, start, end string) error {
	r, err := an.ResolveRange(start, end)
	if err != nil {
		return err
	}
	snap, err := rep.Report(ctx, r)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return writeSnapshot(w, format, snap)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build, render and publish a report via the Temporal worker or locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if reportLocal {
			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return runLocalReport(ctx, cmd.OutOrStdout(), outputFormat, a.Analytics, a.Dashboard, reportStart, reportEnd)
		}

		c, err := client.Dial(client.Options{HostPort: cfg.Temporal.HostPort})
		if err != nil {
			return fmt.Errorf("temporal client: %w", err)
		}
		defer c.Close()

		opts := client.StartWorkflowOptions{
			ID:        "report-" + uuid.NewString(),
			TaskQueue: cfg.Temporal.TaskQueue,
		}
		input := workflows.ReportInput{Start: reportStart, End: reportEnd}
		run, err := c.ExecuteWorkflow(ctx, opts, workflows.ReportWorkflow, input)
		if err != nil {
			return fmt.Errorf("start workflow: %w", err)
		}

		if !reportWait {
			fmt.Fprintf(cmd.OutOrStdout(), "started %s (run %s)\n", run.GetID(), run.GetRunID())
			return nil
		}

		var result workflows.ReportResult
		if err := run.Get(ctx, &result); err != nil {
			return fmt.Errorf("workflow %s: %w", run.GetID(), err)
		}
		return render(cmd.OutOrStdout(), outputFormat, &result, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "workflow\t%s\n", run.GetID())
			fmt.Fprintf(tw, "snapshot\t%s\n", result.SnapshotID)
			fmt.Fprintf(tw, "orders\t%d\n", result.Orders)
			fmt.Fprintf(tw, "published\t%t\n", result.Published)
			for _, chart := range sortedKeys(result.Charts) {
				fmt.Fprintf(tw, "chart %s\t%d bytes\n", chart, result.Charts[chart])
			}
		})
	},
}

func init() {
	addRangeFlags(reportCmd, &reportStart, &reportEnd)
	reportCmd.Flags().BoolVar(&reportWait, "wait", false, "block until the workflow finishes and print its result")
	reportCmd.Flags().BoolVar(&reportLocal, "local", false, "run the report in this process instead of on the Temporal worker")
}
