package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/olistboard/internal/adapters/postgres"
	"github.com/samirrijal/olistboard/internal/adapters/valkey"
	"github.com/samirrijal/olistboard/internal/core/ports"
	"github.com/samirrijal/olistboard/internal/core/usecases"
)

// AssetSource serves the raw bytes of an image asset with its MIME type.
type AssetSource interface {
	Name() string
	Bytes(ctx context.Context) ([]byte, string, error)
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Analytics *usecases.AnalyticsService
	Charts    *usecases.ChartService
	Dashboard *usecases.DashboardService
	Portrait  AssetSource
	MapImage  ports.ImageLoader
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
	DocsPath  string
}
