package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/ports"
	"github.com/samirrijal/olistboard/internal/pkg/metrics"
)

// DashboardService builds and publishes dashboard snapshots.
type DashboardService struct {
	analytics *AnalyticsService
	charts    *ChartService
	publisher ports.SnapshotPublisher
}

// NewDashboardService creates a new DashboardService. publisher may be nil,
// in which case snapshots are built but never published.
func NewDashboardService(analytics *AnalyticsService, charts *ChartService, publisher ports.SnapshotPublisher) *DashboardService {
	return &DashboardService{analytics: analytics, charts: charts, publisher: publisher}
}

// Snapshot computes every analysis for r and stamps it with a fresh ID.
func (s *DashboardService) Snapshot(ctx context.Context, r domain.DateRange) *domain.Snapshot {
	snap := s.analytics.Summary(ctx, r)
	snap.ID = uuid.NewString()
	snap.GeneratedAt = time.Now().UTC()
	return snap
}

// Publish sends snap to the configured publisher. It reports whether the
// snapshot was sent.
func (s *DashboardService) Publish(ctx context.Context, snap *domain.Snapshot) (bool, error) {
	if s.publisher == nil {
		return false, nil
	}
	if err := s.publisher.PublishSnapshot(ctx, snap); err != nil {
		return false, fmt.Errorf("publish snapshot %s: %w", snap.ID, err)
	}
	metrics.SnapshotsPublished.Inc()
	return true, nil
}

// Report builds a snapshot for r, warms the chart cache and publishes the
// snapshot.
func (s *DashboardService) Report(ctx context.Context, r domain.DateRange) (*domain.Snapshot, error) {
	snap := s.Snapshot(ctx, r)
	if _, err := s.charts.RenderAll(ctx, r); err != nil {
		return nil, err
	}
	if _, err := s.Publish(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
