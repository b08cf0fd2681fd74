// Package asset reads image assets from disk with a remote fallback.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/pkg/metrics"
)

// maxAssetBytes bounds a remote download.
const maxAssetBytes = 20 << 20

const userAgent = "olistboard/1.0 (+https://github.com/samirrijal/olistboard)"

// Fetcher implements ports.AssetFetcher. Remote reads go through a circuit
// breaker so that an unreachable host fails fast on later page renders.
type Fetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewFetcher creates a Fetcher whose remote requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	settings := gobreaker.Settings{
		Name:        "asset-remote",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// Fetch returns the bytes of localPath when that file can be read, else the
// body of remoteURL. Either argument may be empty. When neither source
// yields data the error wraps domain.ErrImageUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, localPath, remoteURL string) ([]byte, error) {
	var localErr, remoteErr error

	if localPath != "" {
		data, err := os.ReadFile(localPath)
		if err == nil {
			metrics.AssetFetches.WithLabelValues("local").Inc()
			return data, nil
		}
		localErr = err
	} else {
		localErr = errors.New("no local path")
	}

	if remoteURL != "" {
		data, err := f.breaker.Execute(func() ([]byte, error) {
			return f.get(ctx, remoteURL)
		})
		if err == nil {
			metrics.AssetFetches.WithLabelValues("remote").Inc()
			return data, nil
		}
		remoteErr = err
	} else {
		remoteErr = errors.New("no remote url")
	}

	metrics.AssetFetches.WithLabelValues("unavailable").Inc()
	return nil, fmt.Errorf("%w: local: %v; remote: %v", domain.ErrImageUnavailable, localErr, remoteErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxAssetBytes {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, maxAssetBytes)
	}
	return data, nil
}
