package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samirrijal/olistboard/internal/app"
	"github.com/samirrijal/olistboard/internal/core/domain"
)

var (
	renderStart, renderEnd string
	renderOut              string
)

var renderCmd = &cobra.Command{
	Use:   "render [chart...]",
	Short: "Write dashboard charts as PNG files",
	Long:  "Renders the named charts (default all of revenue-hexbin, region-spend, customer-map) into --out as <chart>.png.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		charts := args
		if len(charts) == 0 {
			charts = domain.Charts
		}

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.Analytics.ResolveRange(renderStart, renderEnd)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(renderOut, 0o755); err != nil {
			return err
		}

		written := make(map[string]int, len(charts))
		for _, chart := range charts {
			data, err := a.Charts.Render(ctx, chart, r)
			if errors.Is(err, domain.ErrImageUnavailable) {
				slog.Warn("skipping chart", "chart", chart, "error", err)
				continue
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", chart, err)
			}
			path := filepath.Join(renderOut, chart+".png")
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			written[path] = len(data)
		}
		return writeCounts(cmd.OutOrStdout(), outputFormat, written)
	},
}

func init() {
	addRangeFlags(renderCmd, &renderStart, &renderEnd)
	renderCmd.Flags().StringVar(&renderOut, "out", ".", "output directory")
}
