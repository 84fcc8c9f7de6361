package ports

import (
	"context"

	"datasentry/domain/core"
	"datasentry/domain/quality"
)

// AnalysisRepository stores one analysis result per dataset. Save overwrites.
type AnalysisRepository interface {
	Save(ctx context.Context, result *quality.AnalysisResult) error
	GetByDatasetID(ctx context.Context, id core.ID) (*quality.AnalysisResult, error)
	ListSummaries(ctx context.Context) ([]quality.Summary, error)
	Delete(ctx context.Context, id core.ID) error
}
