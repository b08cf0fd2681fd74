package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/olistboard/internal/app"
	"github.com/samirrijal/olistboard/internal/pkg/config"
	"github.com/samirrijal/olistboard/internal/pkg/logging"
	"github.com/samirrijal/olistboard/internal/workflows"
)

func main() {
	cfg, err := config.Load("olistboard-reporter")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Telemetry.ServiceName, cfg.Log.Level, cfg.Log.Format)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.ReportWorkflow)
	w.RegisterActivity(&workflows.ReportActivities{
		Analytics: a.Analytics,
		Charts:    a.Charts,
		Dashboard: a.Dashboard,
	})

	slog.Info("report worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
