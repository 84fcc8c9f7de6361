package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"datasentry/domain/core"
	"datasentry/domain/quality"
	"datasentry/ports"
)

type analysisRepository struct {
	mu      sync.RWMutex
	results map[core.ID]*quality.AnalysisResult
}

// NewAnalysisRepository creates an empty in-memory result store
func NewAnalysisRepository() ports.AnalysisRepository {
	return &analysisRepository{results: make(map[core.ID]*quality.AnalysisResult)}
}

// cloneResult copies the slices and maps a caller could mutate
func cloneResult(r *quality.AnalysisResult) *quality.AnalysisResult {
	c := *r
	c.IssuesByKind = make(map[quality.IssueKind]int, len(r.IssuesByKind))
	for k, v := range r.IssuesByKind {
		c.IssuesByKind[k] = v
	}
	c.Issues = append([]quality.Issue(nil), r.Issues...)
	c.Corrections = append([]quality.Correction(nil), r.Corrections...)
	c.ColumnProfiles = append([]quality.ColumnProfile(nil), r.ColumnProfiles...)
	c.DuplicateGroups = make([]quality.DuplicateGroup, len(r.DuplicateGroups))
	for i, g := range r.DuplicateGroups {
		g.Rows = append([]int(nil), g.Rows...)
		c.DuplicateGroups[i] = g
	}
	return &c
}

// Save replaces any previous result for the dataset
func (r *analysisRepository) Save(ctx context.Context, result *quality.AnalysisResult) error {
	if result == nil || result.DatasetID.IsEmpty() {
		return fmt.Errorf("analysis result needs a dataset id")
	}
	stored := cloneResult(result)

	r.mu.Lock()
	r.results[result.DatasetID] = stored
	r.mu.Unlock()
	return nil
}

func (r *analysisRepository) GetByDatasetID(ctx context.Context, id core.ID) (*quality.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrAnalysisNotFound, id)
	}
	return cloneResult(res), nil
}

// ListSummaries returns one summary per stored result, newest analysis first
func (r *analysisRepository) ListSummaries(ctx context.Context) ([]quality.Summary, error) {
	r.mu.RLock()
	out := make([]quality.Summary, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res.Summary())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AnalyzedAt.Equal(out[j].AnalyzedAt) {
			return out[i].AnalyzedAt.After(out[j].AnalyzedAt)
		}
		return out[i].DatasetID < out[j].DatasetID
	})
	return out, nil
}

// Delete is a no-op for unknown ids, since a dataset may never have been analysed
func (r *analysisRepository) Delete(ctx context.Context, id core.ID) error {
	r.mu.Lock()
	delete(r.results, id)
	r.mu.Unlock()
	return nil
}
