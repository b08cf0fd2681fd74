package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/usecases"
)

// ReportActivities holds the activity implementations for the report workflow.
type ReportActivities struct {
	Analytics *usecases.AnalyticsService
	Charts    *usecases.ChartService
	Dashboard *usecases.DashboardService
}

// resolve parses the input range. Bad dates and an empty dataset will not
// improve on retry, so they fail the activity for good.
func (a *ReportActivities) resolve(input ReportInput) (domain.DateRange, error) {
	r, err := a.Analytics.ResolveRange(input.Start, input.End)
	if err != nil {
		err = fmt.Errorf("resolve range: %w", err)
		if errors.Is(err, usecases.ErrInvalidRange) || errors.Is(err, domain.ErrNoData) {
			return r, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidRange", err)
		}
		return r, err
	}
	return r, nil
}

// ComputeSnapshot builds a snapshot for the requested range.
func (a *ReportActivities) ComputeSnapshot(ctx context.Context, input ReportInput) (*domain.Snapshot, error) {
	r, err := a.resolve(input)
	if err != nil {
		return nil, err
	}
	return a.Dashboard.Snapshot(ctx, r), nil
}

// RenderCharts renders every chart into the cache and returns their sizes.
func (a *ReportActivities) RenderCharts(ctx context.Context, input ReportInput) (map[string]int, error) {
	r, err := a.resolve(input)
	if err != nil {
		return nil, err
	}
	return a.Charts.RenderAll(ctx, r)
}

// PublishSnapshot sends the snapshot to subscribers.
func (a *ReportActivities) PublishSnapshot(ctx context.Context, snap *domain.Snapshot) (bool, error) {
	return a.Dashboard.Publish(ctx, snap)
}

// InvalidateCharts drops cached charts for the range (saga compensation).
func (a *ReportActivities) InvalidateCharts(ctx context.Context, input ReportInput) error {
	r, err := a.resolve(input)
	if err != nil {
		return err
	}
	if err := a.Charts.Invalidate(ctx, r); err != nil {
		return fmt.Errorf("invalidate charts: %w", err)
	}
	slog.InfoContext(ctx, "charts invalidated", "range", r.Key())
	return nil
}
