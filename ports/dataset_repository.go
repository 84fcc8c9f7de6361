package ports

import (
	"context"

	"datasentry/domain/core"
	"datasentry/domain/dataset"
)

// DatasetRepository defines the interface for dataset storage operations.
// Implementations store and return whole values; a reader never observes a
// partially written dataset.
type DatasetRepository interface {
	Create(ctx context.Context, ds *dataset.Dataset) error
	GetByID(ctx context.Context, id core.ID) (*dataset.Dataset, error)
	Update(ctx context.Context, ds *dataset.Dataset) error
	Delete(ctx context.Context, id core.ID) error
	List(ctx context.Context) ([]*dataset.Dataset, error)
}
