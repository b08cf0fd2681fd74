package ports

import (
	"context"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// DatasetSource loads the full dataset into memory.
type DatasetSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// DatasetStore persists a dataset so that a later Load can serve it.
type DatasetStore interface {
	DatasetSource
	// Import replaces the stored tables with ds and returns rows written per table.
	Import(ctx context.Context, ds *domain.Dataset) (map[string]int64, error)
}
