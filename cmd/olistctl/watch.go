package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	natsadapter "github.com/samirrijal/olistboard/internal/adapters/nats"
	"github.com/samirrijal/olistboard/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print dashboard snapshots as they are published",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.NATS.URL == "" {
			return errors.New("nats.url is not configured")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer sub.Close()

		out := cmd.OutOrStdout()
		err = sub.SubscribeSnapshots(ctx, func(ctx context.Context, snap *domain.Snapshot) error {
			return writeSnapshot(out, outputFormat, snap)
		})
		if err != nil {
			return err
		}

		<-ctx.Done()
		return nil
	},
}
