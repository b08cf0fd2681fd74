package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/olistboard/internal/analytics"
	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/ports"
	"github.com/samirrijal/olistboard/internal/pkg/metrics"
	"github.com/samirrijal/olistboard/internal/pkg/telemetry"
)

// ChartService renders the dashboard charts as PNG bytes, reading through
// an optional cache.
type ChartService struct {
	analytics *AnalyticsService
	renderer  ports.ChartRenderer
	mapImage  ports.ImageLoader
	cache     ports.CacheService
	ttl       int
}

// NewChartService creates a new ChartService. cache may be nil.
func NewChartService(
	analytics *AnalyticsService,
	renderer ports.ChartRenderer,
	mapImage ports.ImageLoader,
	cache ports.CacheService,
	ttlSeconds int,
) *ChartService {
	return &ChartService{
		analytics: analytics,
		renderer:  renderer,
		mapImage:  mapImage,
		cache:     cache,
		ttl:       ttlSeconds,
	}
}

// CacheKey returns the cache key of chart for r. Charts that do not depend
// on the date range share one key.
func CacheKey(chart string, r domain.DateRange) string {
	if chart == domain.ChartRevenueHexbin {
		return "chart:" + chart + ":" + r.Key()
	}
	return "chart:" + chart + ":all"
}

// Render returns the PNG for chart over r. An unknown name yields
// domain.ErrUnknownChart; a missing background map yields an error
// wrapping domain.ErrImageUnavailable.
func (s *ChartService) Render(ctx context.Context, chart string, r domain.DateRange) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "charts.render")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrChart, chart))

	if !knownChart(chart) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownChart, chart)
	}

	key := CacheKey(chart, r)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			metrics.CacheHits.WithLabelValues(chart).Inc()
			span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, true))
			return data, nil
		}
		metrics.CacheMisses.WithLabelValues(chart).Inc()
	}

	var data []byte
	err := metrics.ObserveRender(chart, func() error {
		var err error
		data, err = s.render(ctx, chart, r)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			slog.WarnContext(ctx, "chart cache write failed", "chart", chart, "error", err)
		}
	}
	return data, nil
}

func (s *ChartService) render(ctx context.Context, chart string, r domain.DateRange) ([]byte, error) {
	switch chart {
	case domain.ChartRevenueHexbin:
		return s.renderer.RevenueHexbin(s.analytics.ProductRevenues(ctx, r))
	case domain.ChartRegionSpend:
		return s.renderer.RegionSpend(s.analytics.RegionSpend(ctx))
	default:
		bg, err := s.mapImage.Image(ctx)
		if err != nil {
			return nil, err
		}
		points := analytics.Points(s.analytics.CustomerLocations(ctx))
		return s.renderer.CustomerMap(bg, points)
	}
}

// RenderAll renders and caches every chart for r, returning the size of each
// PNG by name. A missing background map skips the customer map with a
// warning; any other failure aborts.
func (s *ChartService) RenderAll(ctx context.Context, r domain.DateRange) (map[string]int, error) {
	sizes := make(map[string]int, len(domain.Charts))
	for _, chart := range domain.Charts {
		data, err := s.Render(ctx, chart, r)
		if errors.Is(err, domain.ErrImageUnavailable) {
			slog.WarnContext(ctx, "skipping chart", "chart", chart, "error", err)
			continue
		}
		if err != nil {
			return sizes, fmt.Errorf("render %s: %w", chart, err)
		}
		sizes[chart] = len(data)
	}
	return sizes, nil
}

// Invalidate drops the cached bytes of every chart for r.
func (s *ChartService) Invalidate(ctx context.Context, r domain.DateRange) error {
	if s.cache == nil {
		return nil
	}
	var errs []error
	for _, chart := range domain.Charts {
		if err := s.cache.Delete(ctx, CacheKey(chart, r)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func knownChart(name string) bool {
	for _, c := range domain.Charts {
		if c == name {
			return true
		}
	}
	return false
}
