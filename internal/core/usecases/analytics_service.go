package usecases

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/olistboard/internal/analytics"
	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/pkg/telemetry"
)

// SpendWindowMonths is how far back from the latest approval the regional
// spend analysis looks.
const SpendWindowMonths = 3

// AnalyticsService answers the dashboard questions over one loaded dataset.
// The dataset is never modified; range-independent results are computed once.
type AnalyticsService struct {
	ds *domain.Dataset

	boundsOnce sync.Once
	bounds     domain.DateRange
	boundsErr  error

	spendOnce sync.Once
	window    []domain.Order
	spends    []domain.RegionSpend
	spenders  []domain.CustomerSpend

	locOnce   sync.Once
	locations []domain.CustomerLocation
	density   []domain.StateDensity
}

// NewAnalyticsService creates a new AnalyticsService over ds.
func NewAnalyticsService(ds *domain.Dataset) *AnalyticsService {
	return &AnalyticsService{ds: ds}
}

// Dataset returns the underlying tables.
func (s *AnalyticsService) Dataset() *domain.Dataset {
	return s.ds
}

// Bounds returns the first and last approval day in the orders table.
func (s *AnalyticsService) Bounds() (domain.DateRange, error) {
	s.boundsOnce.Do(func() {
		s.bounds, s.boundsErr = analytics.DateBounds(s.ds.Orders)
	})
	return s.bounds, s.boundsErr
}

// ResolveRange parses start and end as YYYY-MM-DD days. An empty value
// falls back to the matching dataset bound. Values outside the bounds are
// accepted as-is.
func (s *AnalyticsService) ResolveRange(start, end string) (domain.DateRange, error) {
	var r domain.DateRange
	if start == "" || end == "" {
		b, err := s.Bounds()
		if err != nil {
			return r, err
		}
		r = b
	}
	if start != "" {
		t, err := analytics.ParseDay(start)
		if err != nil {
			return r, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
		}
		r.Start = t
	}
	if end != "" {
		t, err := analytics.ParseDay(end)
		if err != nil {
			return r, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
		}
		r.End = t
	}
	return r, nil
}

// Orders returns the approved orders inside r.
func (s *AnalyticsService) Orders(ctx context.Context, r domain.DateRange) []domain.Order {
	_, span := s.start(ctx, "analytics.orders", r)
	defer span.End()

	orders := analytics.FilterOrders(s.ds.Orders, r)
	span.SetAttributes(attribute.Int(telemetry.AttrOrders, len(orders)))
	return orders
}

// ProductRevenues aggregates sold items per product inside r, highest
// revenue first.
func (s *AnalyticsService) ProductRevenues(ctx context.Context, r domain.DateRange) []domain.ProductRevenue {
	ctx, span := s.start(ctx, "analytics.product_revenues", r)
	defer span.End()

	return analytics.ProductRevenues(s.ds, s.Orders(ctx, r))
}

// TopProduct returns the best-selling product by revenue inside r.
// domain.ErrNoData is returned when nothing was sold.
func (s *AnalyticsService) TopProduct(ctx context.Context, r domain.DateRange) (*domain.ProductRevenue, error) {
	return analytics.TopProduct(s.ProductRevenues(ctx, r))
}

func (s *AnalyticsService) loadSpend() {
	s.spendOnce.Do(func() {
		s.window = analytics.RecentWindow(s.ds.Orders, SpendWindowMonths)
		s.spends = analytics.RegionSpends(s.ds, s.window)
		s.spenders = analytics.TopSpenders(s.ds, s.window, 0)
	})
}

// RegionSpend returns the mean payment per customer state over the recent
// window, lowest mean first.
func (s *AnalyticsService) RegionSpend(ctx context.Context) []domain.RegionSpend {
	_, span := telemetry.Tracer().Start(ctx, "analytics.region_spend")
	defer span.End()

	s.loadSpend()
	return s.spends
}

// TopSpenders returns customers by total payment over the recent window.
// limit ≤ 0 returns all of them.
func (s *AnalyticsService) TopSpenders(ctx context.Context, limit int) []domain.CustomerSpend {
	_, span := telemetry.Tracer().Start(ctx, "analytics.top_spenders")
	defer span.End()

	s.loadSpend()
	if limit > 0 && len(s.spenders) > limit {
		return s.spenders[:limit]
	}
	return s.spenders
}

func (s *AnalyticsService) loadLocations() {
	s.locOnce.Do(func() {
		s.locations = analytics.CustomerLocations(s.ds)
		s.density = analytics.StateDensities(s.locations)
	})
}

// CustomerLocations returns every de-duplicated customer resolved to
// coordinates, in customer table order.
func (s *AnalyticsService) CustomerLocations(ctx context.Context) []domain.CustomerLocation {
	_, span := telemetry.Tracer().Start(ctx, "analytics.customer_locations")
	defer span.End()

	s.loadLocations()
	return s.locations
}

// StateDensity counts located customers per state, most populous first.
func (s *AnalyticsService) StateDensity(ctx context.Context) []domain.StateDensity {
	s.loadLocations()
	return s.density
}

// Summary bundles every analysis for r. The returned snapshot has no ID.
func (s *AnalyticsService) Summary(ctx context.Context, r domain.DateRange) *domain.Snapshot {
	ctx, span := s.start(ctx, "analytics.summary", r)
	defer span.End()

	orders := s.Orders(ctx, r)
	top, _ := analytics.TopProduct(analytics.ProductRevenues(s.ds, orders))
	return &domain.Snapshot{
		Range:        r,
		Orders:       len(orders),
		TopProduct:   top,
		RegionSpend:  s.RegionSpend(ctx),
		TopSpenders:  s.TopSpenders(ctx, SummaryTopSpenders),
		StateDensity: s.StateDensity(ctx),
		Located:      len(s.CustomerLocations(ctx)),
	}
}

// SummaryTopSpenders is how many spenders a summary carries.
const SummaryTopSpenders = 10

func (s *AnalyticsService) start(ctx context.Context, name string, r domain.DateRange) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, name, trace.WithAttributes(
		attribute.String(telemetry.AttrRangeStart, r.Start.Format(domain.DateLayout)),
		attribute.String(telemetry.AttrRangeEnd, r.End.Format(domain.DateLayout)),
	))
}
