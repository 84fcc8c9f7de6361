package migration

import (
	"context"

	"datasentry/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner creates the datasets and analysis_results schema
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "2.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every statement is
// idempotent, so Run is safe to repeat.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createDatasetsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create datasets table")
	}

	if err := r.createAnalysisResultsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create analysis_results table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createDatasetsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id VARCHAR(64) PRIMARY KEY,
			original_name TEXT NOT NULL,
			file_path TEXT NOT NULL DEFAULT '',
			file_size BIGINT NOT NULL DEFAULT 0,
			mime_type TEXT NOT NULL DEFAULT '',
			headers JSONB NOT NULL,
			row_data JSONB NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createAnalysisResultsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_results (
			dataset_id VARCHAR(64) PRIMARY KEY REFERENCES datasets(id) ON DELETE CASCADE,
			file_name TEXT NOT NULL DEFAULT '',
			quality_score INTEGER NOT NULL,
			total_records INTEGER NOT NULL DEFAULT 0,
			issues_count INTEGER NOT NULL DEFAULT 0,
			missing_fields INTEGER NOT NULL DEFAULT 0,
			invalid_fields INTEGER NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMP WITH TIME ZONE,
			analyzed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			payload JSONB NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_datasets_uploaded_at ON datasets(uploaded_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_analysis_results_analyzed_at ON analysis_results(analyzed_at DESC)",
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
