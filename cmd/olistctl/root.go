package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samirrijal/olistboard/internal/pkg/config"
	"github.com/samirrijal/olistboard/internal/pkg/logging"
)

var (
	// Global flags
	outputFormat string
	debug        bool

	// Loaded configuration
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "olistctl",
	Short:         "Olist dashboard command line",
	Long:          `olistctl imports the Olist CSV export into Postgres, prints analysis summaries, renders the dashboard charts and drives the report workflow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(outputFormat); err != nil {
			return err
		}
		c, err := config.Load("olistctl")
		if err != nil {
			return err
		}
		cfg = c

		level := cfg.Log.Level
		if debug {
			level = "debug"
		}
		// stdout carries command output, so logs go to stderr.
		slog.SetDefault(logging.New(os.Stderr, level, "text"))
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(importCmd, summaryCmd, renderCmd, reportCmd, watchCmd)
}
