package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// ReportTaskQueue is the default task queue of the report worker.
const ReportTaskQueue = "dashboard-reports"

// ReportInput selects the date range of a report. Empty fields fall back to
// the dataset bounds.
type ReportInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportResult summarises a finished report run.
type ReportResult struct {
	SnapshotID string         `json:"snapshot_id"`
	Orders     int            `json:"orders"`
	Charts     map[string]int `json:"charts"`
	Published  bool           `json:"published"`
}

// ReportWorkflow computes a snapshot, renders and caches every chart, then
// publishes the snapshot. When publishing fails the freshly cached charts
// are invalidated before the error is returned.
func ReportWorkflow(ctx workflow.Context, input ReportInput) (*ReportResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting report workflow", "start", input.Start, "end", input.End)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Compute snapshot
	var snap domain.Snapshot
	if err := workflow.ExecuteActivity(ctx, "ComputeSnapshot", input).Get(ctx, &snap); err != nil {
		return nil, err
	}

	// Step 2: Render and cache charts
	var charts map[string]int
	if err := workflow.ExecuteActivity(ctx, "RenderCharts", input).Get(ctx, &charts); err != nil {
		return nil, err
	}

	// Step 3: Publish
	var published bool
	if err := workflow.ExecuteActivity(ctx, "PublishSnapshot", &snap).Get(ctx, &published); err != nil {
		logger.Warn("snapshot publish failed, invalidating charts", "error", err)
		_ = workflow.ExecuteActivity(ctx, "InvalidateCharts", input).Get(ctx, nil)
		return nil, err
	}

	logger.Info("Report finished", "snapshot", snap.ID, "published", published)
	return &ReportResult{
		SnapshotID: snap.ID,
		Orders:     snap.Orders,
		Charts:     charts,
		Published:  published,
	}, nil
}
