package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"datasentry/domain/core"
	"datasentry/domain/quality"
	"datasentry/ports"

	"github.com/jmoiron/sqlx"
)

// analysisRepository keeps one row per dataset. Save is an upsert, so a
// reader sees either the previous or the new document.
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Save(ctx context.Context, result *quality.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	query := `INSERT INTO analysis_results (
		dataset_id, file_name, quality_score, total_records, issues_count,
		missing_fields, invalid_fields, uploaded_at, analyzed_at, payload
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (dataset_id) DO UPDATE SET
		file_name = EXCLUDED.file_name,
		quality_score = EXCLUDED.quality_score,
		total_records = EXCLUDED.total_records,
		issues_count = EXCLUDED.issues_count,
		missing_fields = EXCLUDED.missing_fields,
		invalid_fields = EXCLUDED.invalid_fields,
		uploaded_at = EXCLUDED.uploaded_at,
		analyzed_at = EXCLUDED.analyzed_at,
		payload = EXCLUDED.payload`

	_, err = r.db.ExecContext(ctx, query,
		result.DatasetID.String(), result.FileName, result.QualityScore, result.TotalRecords, result.IssuesCount,
		result.MissingFields, result.InvalidFields, result.UploadedAt, result.AnalyzedAt, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	return nil
}

func (r *analysisRepository) GetByDatasetID(ctx context.Context, id core.ID) (*quality.AnalysisResult, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM analysis_results WHERE dataset_id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrAnalysisNotFound, id)
		}
		return nil, fmt.Errorf("failed to get analysis result: %w", err)
	}

	var result quality.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}

func (r *analysisRepository) ListSummaries(ctx context.Context) ([]quality.Summary, error) {
	query := `SELECT dataset_id, file_name, quality_score, total_records, issues_count,
		missing_fields, invalid_fields, COALESCE(uploaded_at, analyzed_at) AS uploaded_at, analyzed_at
	FROM analysis_results
	ORDER BY analyzed_at DESC, dataset_id`

	summaries := []quality.Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("failed to list analysis summaries: %w", err)
	}
	return summaries, nil
}

func (r *analysisRepository) Delete(ctx context.Context, id core.ID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM analysis_results WHERE dataset_id = $1`, id.String()); err != nil {
		return fmt.Errorf("failed to delete analysis result: %w", err)
	}
	return nil
}
