package main

import (
	"github.com/spf13/cobra"

	"github.com/samirrijal/olistboard/internal/app"
)

var summaryStart, summaryEnd string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard figures for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.Analytics.ResolveRange(summaryStart, summaryEnd)
		if err != nil {
			return err
		}
		return writeSnapshot(cmd.OutOrStdout(), outputFormat, a.Analytics.Summary(ctx, r))
	},
}

func init() {
	addRangeFlags(summaryCmd, &summaryStart, &summaryEnd)
}

// addRangeFlags registers --start and --end; empty values fall back to the
// dataset bounds.
func addRangeFlags(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start", "", "first day, YYYY-MM-DD (default earliest approval)")
	cmd.Flags().StringVar(end, "end", "", "last day, YYYY-MM-DD (default latest approval)")
}
