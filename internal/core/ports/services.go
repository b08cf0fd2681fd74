package ports

import (
	"context"
	"errors"
	"image"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// ErrCacheMiss is returned by CacheService.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// SnapshotPublisher broadcasts computed dashboard snapshots.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap *domain.Snapshot) error
}

// AssetFetcher reads raw image bytes, trying the local path before the
// remote URL. It returns domain.ErrImageUnavailable when both fail.
type AssetFetcher interface {
	Fetch(ctx context.Context, localPath, remoteURL string) ([]byte, error)
}

// ImageLoader resolves a named image asset into a decoded raster.
type ImageLoader interface {
	Image(ctx context.Context) (image.Image, error)
}

// ChartRenderer turns analysis results into encoded images.
type ChartRenderer interface {
	RevenueHexbin(revenues []domain.ProductRevenue) ([]byte, error)
	RegionSpend(spends []domain.RegionSpend) ([]byte, error)
	CustomerMap(background image.Image, points []domain.GeoPoint) ([]byte, error)
}
