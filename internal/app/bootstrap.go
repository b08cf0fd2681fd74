// Package app wires configuration into the dataset, adapters and services
// shared by the dashboard server, the report worker and olistctl.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/olistboard/internal/adapters/asset"
	"github.com/samirrijal/olistboard/internal/adapters/csvsource"
	natsadapter "github.com/samirrijal/olistboard/internal/adapters/nats"
	"github.com/samirrijal/olistboard/internal/adapters/postgres"
	"github.com/samirrijal/olistboard/internal/adapters/render"
	"github.com/samirrijal/olistboard/internal/adapters/valkey"
	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/ports"
	"github.com/samirrijal/olistboard/internal/core/usecases"
	"github.com/samirrijal/olistboard/internal/pkg/config"
	"github.com/samirrijal/olistboard/internal/pkg/metrics"
)

// MapAssetName names the overlay background in logs and errors.
const MapAssetName = "brazil-map"

// App holds everything a binary needs after startup. Optional backends are
// nil when disabled or unreachable.
type App struct {
	Config    *config.Config
	Analytics *usecases.AnalyticsService
	Charts    *usecases.ChartService
	Dashboard *usecases.DashboardService

	MapImage *asset.Image
	Portrait *asset.Image

	DB        *postgres.DB
	Cache     *valkey.Cache
	Publisher *natsadapter.Publisher
	NATS      *nats.Conn
}

// LoadDataset reads the dataset from the configured source.
func LoadDataset(ctx context.Context, cfg *config.Config, db *postgres.DB) (*domain.Dataset, error) {
	var src ports.DatasetSource
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("dataset source %q needs a database connection", cfg.Dataset.Source)
		}
		src = postgres.NewDatasetRepo(db)
	default:
		src = csvsource.NewLoader(cfg.Dataset.Dir)
	}

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", cfg.Dataset.Source, err)
	}
	metrics.RecordDatasetRows(ds.RowCounts())
	slog.Info("dataset loaded", "source", cfg.Dataset.Source, "rows", ds.RowCounts())
	return ds, nil
}

// New connects the configured backends, loads the dataset and builds the
// services. Postgres is only dialled for the postgres source; an unreachable
// cache or NATS server degrades to a warning.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if cfg.Dataset.Source == config.SourcePostgres {
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		a.DB = db
	}

	if cfg.Valkey.Enabled {
		cache, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			a.Cache = cache
		}
	}

	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			a.Publisher = pub
		}
		// Separate connection for the WebSocket relay.
		nc, err := natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		} else {
			a.NATS = nc
		}
	}

	ds, err := LoadDataset(ctx, cfg, a.DB)
	if err != nil {
		a.Close()
		return nil, err
	}

	color, err := render.ParseColor(cfg.Overlay.MarkerColor)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("overlay.marker_color: %w", err)
	}
	overlay := render.NewOverlay(cfg.Overlay.BBox, cfg.Overlay.MarkerRadius, color, cfg.Overlay.MarkerAlpha)

	fetcher := asset.NewFetcher(cfg.Assets.FetchTimeout)
	a.MapImage = asset.NewImage(MapAssetName, cfg.Overlay.LocalPath, cfg.Overlay.RemoteURL, fetcher)
	a.Portrait = asset.NewImage(cfg.Portrait.LocalPath, cfg.Portrait.LocalPath, cfg.Portrait.RemoteURL, fetcher)

	// Interfaces stay nil rather than holding a nil pointer.
	var cache ports.CacheService
	if a.Cache != nil {
		cache = a.Cache
	}
	var publisher ports.SnapshotPublisher
	if a.Publisher != nil {
		publisher = a.Publisher
	}

	a.Analytics = usecases.NewAnalyticsService(ds)
	a.Charts = usecases.NewChartService(a.Analytics, render.NewRenderer(overlay), a.MapImage, cache, cfg.Valkey.TTL)
	a.Dashboard = usecases.NewDashboardService(a.Analytics, a.Charts, publisher)
	return a, nil
}

// Close releases every open backend connection.
func (a *App) Close() {
	if a.NATS != nil {
		_ = a.NATS.Drain()
	}
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
