package usecases_test

import (
	"context"
	"image"
	"time"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/ports"
)

// --- Mock CacheService ---

type mockCache struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte, ttl int) error
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, ports.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

// --- Mock ChartRenderer ---

type mockRenderer struct {
	hexbinFn func(revenues []domain.ProductRevenue) ([]byte, error)
	spendFn  func(spends []domain.RegionSpend) ([]byte, error)
	mapFn    func(bg image.Image, points []domain.GeoPoint) ([]byte, error)
}

func (m *mockRenderer) RevenueHexbin(revenues []domain.ProductRevenue) ([]byte, error) {
	if m.hexbinFn != nil {
		return m.hexbinFn(revenues)
	}
	return []byte("hexbin"), nil
}

func (m *mockRenderer) RegionSpend(spends []domain.RegionSpend) ([]byte, error) {
	if m.spendFn != nil {
		return m.spendFn(spends)
	}
	return []byte("spend"), nil
}

func (m *mockRenderer) CustomerMap(bg image.Image, points []domain.GeoPoint) ([]byte, error) {
	if m.mapFn != nil {
		return m.mapFn(bg, points)
	}
	return []byte("map"), nil
}

// --- Mock ImageLoader ---

type mockImage struct {
	imageFn func(ctx context.Context) (image.Image, error)
}

func (m *mockImage) Image(ctx context.Context) (image.Image, error) {
	if m.imageFn != nil {
		return m.imageFn(ctx)
	}
	return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
}

// --- Mock SnapshotPublisher ---

type mockPublisher struct {
	publishFn func(ctx context.Context, snap *domain.Snapshot) error
}

func (m *mockPublisher) PublishSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, snap)
	}
	return nil
}

// --- Fixture ---

func ts(s string) time.Time {
	t, err := time.Parse(domain.TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Orders: []domain.Order{
			{OrderID: "o1", CustomerID: "c1", ApprovedAt: ts("2018-01-10 09:30:00")},
			{OrderID: "o2", CustomerID: "c2", ApprovedAt: ts("2018-03-20 00:00:00")},
			{OrderID: "o3", CustomerID: "c1"},
		},
		Items: []domain.OrderItem{
			{OrderID: "o1", ProductID: "p1", Price: 10},
			{OrderID: "o2", ProductID: "p2", Price: 40},
		},
		Products: []domain.Product{
			{ProductID: "p1", CategoryName: "toys"},
			{ProductID: "p2", CategoryName: "watches"},
		},
		Payments: []domain.Payment{
			{OrderID: "o1", Value: 20},
			{OrderID: "o2", Value: 50},
		},
		Customers: []domain.Customer{
			{CustomerID: "c1", UniqueID: "u1", ZipCodePrefix: 1000, City: "sao paulo", State: "SP"},
			{CustomerID: "c2", UniqueID: "u2", ZipCodePrefix: 2000, City: "rio de janeiro", State: "RJ"},
		},
		Geolocations: []domain.Geolocation{
			{ZipCodePrefix: 1000, City: "sao paulo", State: "SP", Lat: -23.5, Lng: -46.6},
			{ZipCodePrefix: 2000, City: "rio de janeiro", State: "RJ", Lat: -22.9, Lng: -43.2},
		},
	}
}
