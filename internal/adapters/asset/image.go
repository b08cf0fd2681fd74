package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/ports"
)

// Image is a named image asset resolved on first use. A successful read is
// kept for the life of the process; failures are retried on the next call.
type Image struct {
	name      string
	localPath string
	remoteURL string
	fetcher   ports.AssetFetcher

	mu      sync.Mutex
	raw     []byte
	decoded image.Image
}

// NewImage creates a lazily loaded asset.
func NewImage(name, localPath, remoteURL string, fetcher ports.AssetFetcher) *Image {
	return &Image{name: name, localPath: localPath, remoteURL: remoteURL, fetcher: fetcher}
}

// Name returns the asset name used in logs.
func (a *Image) Name() string { return a.name }

// Bytes returns the raw file contents and their detected MIME type.
func (a *Image) Bytes(ctx context.Context) ([]byte, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, "", err
	}
	return a.raw, mimetype.Detect(a.raw).String(), nil
}

// Image returns the decoded raster.
func (a *Image) Image(ctx context.Context) (image.Image, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(ctx); err != nil {
		return nil, err
	}
	if a.decoded == nil {
		img, _, err := image.Decode(bytes.NewReader(a.raw))
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrImageUnavailable, a.name, err)
		}
		a.decoded = img
	}
	return a.decoded, nil
}

func (a *Image) loadLocked(ctx context.Context) error {
	if a.raw != nil {
		return nil
	}
	data, err := a.fetcher.Fetch(ctx, a.localPath, a.remoteURL)
	if err != nil {
		slog.WarnContext(ctx, "image asset unavailable", "asset", a.name, "error", err)
		return err
	}
	a.raw = data
	return nil
}
