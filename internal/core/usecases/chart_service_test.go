package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/usecases"
)

func newChartService(renderer *mockRenderer, img *mockImage, cache *mockCache) (*usecases.ChartService, domain.DateRange) {
	an := usecases.NewAnalyticsService(testDataset())
	r, _ := an.ResolveRange("", "")
	if cache == nil {
		return usecases.NewChartService(an, renderer, img, nil, 600), r
	}
	return usecases.NewChartService(an, renderer, img, cache, 600), r
}

func TestCacheKey(t *testing.T) {
	r := domain.DateRange{Start: ts("2018-01-01 00:00:00"), End: ts("2018-02-01 00:00:00")}

	if got := usecases.CacheKey(domain.ChartRevenueHexbin, r); got != "chart:revenue-hexbin:2018-01-01_2018-02-01" {
		t.Errorf("unexpected hexbin key %s", got)
	}
	if got := usecases.CacheKey(domain.ChartCustomerMap, r); got != "chart:customer-map:all" {
		t.Errorf("unexpected map key %s", got)
	}
}

func TestChartService_Render_CacheHit(t *testing.T) {
	renderer := &mockRenderer{
		hexbinFn: func(revenues []domain.ProductRevenue) ([]byte, error) {
			t.Error("renderer should not be called on a cache hit")
			return nil, nil
		},
	}
	cache := &mockCache{
		getFn: func(ctx context.Context, key string) ([]byte, error) {
			return []byte("cached"), nil
		},
	}
	svc, r := newChartService(renderer, &mockImage{}, cache)

	data, err := svc.Render(context.Background(), domain.ChartRevenueHexbin, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "cached" {
		t.Errorf("expected cached bytes, got %q", data)
	}
}

func TestChartService_Render_CacheMissStores(t *testing.T) {
	var gotRevenues int
	renderer := &mockRenderer{
		hexbinFn: func(revenues []domain.ProductRevenue) ([]byte, error) {
			gotRevenues = len(revenues)
			return []byte("png"), nil
		},
	}
	var storedKey string
	var storedTTL int
	cache := &mockCache{
		setFn: func(ctx context.Context, key string, value []byte, ttl int) error {
			storedKey, storedTTL = key, ttl
			return nil
		},
	}
	svc, r := newChartService(renderer, &mockImage{}, cache)

	data, err := svc.Render(context.Background(), domain.ChartRevenueHexbin, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("expected rendered bytes, got %q", data)
	}
	if gotRevenues != 2 {
		t.Errorf("expected 2 product revenues, got %d", gotRevenues)
	}
	if storedKey != "chart:revenue-hexbin:2018-01-10_2018-03-20" {
		t.Errorf("unexpected cache key %s", storedKey)
	}
	if storedTTL != 600 {
		t.Errorf("expected ttl 600, got %d", storedTTL)
	}
}

func TestChartService_Render_CacheWriteFailureIgnored(t *testing.T) {
	cache := &mockCache{
		setFn: func(ctx context.Context, key string, value []byte, ttl int) error {
			return fmt.Errorf("connection refused")
		},
	}
	svc, r := newChartService(&mockRenderer{}, &mockImage{}, cache)

	if _, err := svc.Render(context.Background(), domain.ChartRegionSpend, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChartService_Render_UnknownChart(t *testing.T) {
	svc, r := newChartService(&mockRenderer{}, &mockImage{}, nil)

	_, err := svc.Render(context.Background(), "pie", r)
	if !errors.Is(err, domain.ErrUnknownChart) {
		t.Fatalf("expected ErrUnknownChart, got %v", err)
	}
}

func TestChartService_Render_CustomerMapPoints(t *testing.T) {
	var got []domain.GeoPoint
	renderer := &mockRenderer{
		mapFn: func(bg image.Image, points []domain.GeoPoint) ([]byte, error) {
			got = points
			return []byte("map"), nil
		},
	}
	svc, r := newChartService(renderer, &mockImage{}, nil)

	if _, err := svc.Render(context.Background(), domain.ChartCustomerMap, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Lat != -23.5 || got[0].Lon != -46.6 {
		t.Errorf("expected first point in sao paulo, got %+v", got[0])
	}
}

func TestChartService_Render_MapImageUnavailable(t *testing.T) {
	img := &mockImage{
		imageFn: func(ctx context.Context) (image.Image, error) {
			return nil, fmt.Errorf("brazil map: %w", domain.ErrImageUnavailable)
		},
	}
	svc, r := newChartService(&mockRenderer{}, img, nil)

	_, err := svc.Render(context.Background(), domain.ChartCustomerMap, r)
	if !errors.Is(err, domain.ErrImageUnavailable) {
		t.Fatalf("expected ErrImageUnavailable, got %v", err)
	}
}

func TestChartService_RenderAll_SkipsMissingMap(t *testing.T) {
	img := &mockImage{
		imageFn: func(ctx context.Context) (image.Image, error) {
			return nil, domain.ErrImageUnavailable
		},
	}
	svc, r := newChartService(&mockRenderer{}, img, nil)

	sizes, err := svc.RenderAll(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sizes) != 2 {
		t.Fatalf("expected 2 rendered charts, got %d", len(sizes))
	}
	if _, ok := sizes[domain.ChartCustomerMap]; ok {
		t.Error("customer map should be skipped")
	}
}

func TestChartService_RenderAll_RenderError(t *testing.T) {
	renderer := &mockRenderer{
		spendFn: func(spends []domain.RegionSpend) ([]byte, error) {
			return nil, fmt.Errorf("boom")
		},
	}
	svc, r := newChartService(renderer, &mockImage{}, nil)

	if _, err := svc.RenderAll(context.Background(), r); err == nil {
		t.Fatal("expected error")
	}
}

func TestChartService_Invalidate(t *testing.T) {
	var deleted []string
	cache := &mockCache{
		deleteFn: func(ctx context.Context, key string) error {
			deleted = append(deleted, key)
			return nil
		},
	}
	svc, r := newChartService(&mockRenderer{}, &mockImage{}, cache)

	if err := svc.Invalidate(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != len(domain.Charts) {
		t.Errorf("expected %d deletes, got %d", len(domain.Charts), len(deleted))
	}
}
