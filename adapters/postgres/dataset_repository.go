// Package postgres implements the repositories on PostgreSQL through sqlx.
// Rows and results are stored as JSONB documents next to the columns used for
// listing.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"datasentry/domain/core"
	"datasentry/domain/dataset"
	"datasentry/ports"

	"github.com/jmoiron/sqlx"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

type datasetRecord struct {
	ID           string    `db:"id"`
	OriginalName string    `db:"original_name"`
	FilePath     string    `db:"file_path"`
	FileSize     int64     `db:"file_size"`
	MimeType     string    `db:"mime_type"`
	Headers      string    `db:"headers"`
	RowData      string    `db:"row_data"`
	RowCount     int       `db:"row_count"`
	UploadedAt   time.Time `db:"uploaded_at"`
}

const datasetColumns = `id, original_name, file_path, file_size, mime_type, headers, row_data, row_count, uploaded_at`

func toRecord(ds *dataset.Dataset) (*datasetRecord, error) {
	headers, err := json.Marshal(ds.Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal headers: %w", err)
	}
	rows := ds.Rows
	if rows == nil {
		rows = []*dataset.Row{}
	}
	rowData, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rows: %w", err)
	}
	return &datasetRecord{
		ID:           ds.ID.String(),
		OriginalName: ds.OriginalName,
		FilePath:     ds.FilePath,
		FileSize:     ds.FileSize,
		MimeType:     ds.MimeType,
		Headers:      string(headers),
		RowData:      string(rowData),
		RowCount:     ds.RowCount,
		UploadedAt:   ds.UploadedAt,
	}, nil
}

func (rec *datasetRecord) toDataset() (*dataset.Dataset, error) {
	ds := &dataset.Dataset{
		ID:           core.ID(rec.ID),
		OriginalName: rec.OriginalName,
		FilePath:     rec.FilePath,
		FileSize:     rec.FileSize,
		MimeType:     rec.MimeType,
		RowCount:     rec.RowCount,
		UploadedAt:   rec.UploadedAt,
	}
	if err := json.Unmarshal([]byte(rec.Headers), &ds.Headers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal headers: %w", err)
	}
	if err := json.Unmarshal([]byte(rec.RowData), &ds.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows: %w", err)
	}
	return ds, nil
}

// Create inserts a new dataset into the database
func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	rec, err := toRecord(ds)
	if err != nil {
		return err
	}

	query := `INSERT INTO datasets (` + datasetColumns + `) VALUES (
		:id, :original_name, :file_path, :file_size, :mime_type, :headers, :row_data, :row_count, :uploaded_at
	)`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.ID) (*dataset.Dataset, error) {
	var rec datasetRecord
	err := r.db.GetContext(ctx, &rec, `SELECT `+datasetColumns+` FROM datasets WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return rec.toDataset()
}

// Update replaces the stored dataset
func (r *datasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	rec, err := toRecord(ds)
	if err != nil {
		return err
	}

	query := `UPDATE datasets SET
		original_name = :original_name, file_path = :file_path, file_size = :file_size,
		mime_type = :mime_type, headers = :headers, row_data = :row_data, row_count = :row_count
	WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	return expectRow(result, core.ErrDatasetNotFound, ds.ID)
}

// Delete removes a dataset from the database
func (r *datasetRepository) Delete(ctx context.Context, id core.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	return expectRow(result, core.ErrDatasetNotFound, id)
}

// List returns every dataset, newest upload first
func (r *datasetRepository) List(ctx context.Context) ([]*dataset.Dataset, error) {
	var recs []datasetRecord
	if err := r.db.SelectContext(ctx, &recs, `SELECT `+datasetColumns+` FROM datasets ORDER BY uploaded_at DESC, id`); err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}

	out := make([]*dataset.Dataset, 0, len(recs))
	for i := range recs {
		ds, err := recs[i].toDataset()
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

func expectRow(result sql.Result, notFound error, id core.ID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
