// Package memory provides process-lifetime repositories backed by maps. Values
// are cloned on the way in and on the way out, so callers never share rows
// with the store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"datasentry/domain/core"
	"datasentry/domain/dataset"
	"datasentry/ports"
)

type datasetRepository struct {
	mu       sync.RWMutex
	datasets map[core.ID]*dataset.Dataset
}

// NewDatasetRepository creates an empty in-memory dataset store
func NewDatasetRepository() ports.DatasetRepository {
	return &datasetRepository{datasets: make(map[core.ID]*dataset.Dataset)}
}

func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	if ds == nil || ds.ID.IsEmpty() {
		return fmt.Errorf("dataset id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.datasets[ds.ID]; exists {
		return fmt.Errorf("dataset already exists: %s", ds.ID)
	}
	r.datasets[ds.ID] = ds.Clone()
	return nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id core.ID) (*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	return ds.Clone(), nil
}

func (r *datasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.datasets[ds.ID]; !ok {
		return fmt.Errorf("%w: %s", core.ErrDatasetNotFound, ds.ID)
	}
	r.datasets[ds.ID] = ds.Clone()
	return nil
}

func (r *datasetRepository) Delete(ctx context.Context, id core.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	delete(r.datasets, id)
	return nil
}

// List returns every dataset, newest upload first
func (r *datasetRepository) List(ctx context.Context) ([]*dataset.Dataset, error) {
	r.mu.RLock()
	out := make([]*dataset.Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		out = append(out, ds.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
