// Package dataset turns uploaded CSV and XLSX files into stored datasets.
//
// Uploads are validated, written to FileStorage, parsed with normalized headers,
// and stored through the DatasetRepository. Each rejection carries a stable
// error code so callers can tell the user what to fix.
package dataset

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"datasentry/adapters/excel"
	"datasentry/domain/core"
	"datasentry/domain/dataset"
	"datasentry/internal"
	apperrors "datasentry/internal/errors"
	"datasentry/ports"
)

// PreviewRows is the number of rows returned with dataset info
const PreviewRows = 50

// DefaultMaxFileSize is 10MB
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

var mimeTypes = map[excel.FileType]string{
	excel.FileTypeCSV:  "text/csv",
	excel.FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Upload is one incoming file. Size may be -1 when unknown.
type Upload struct {
	Filename string
	Size     int64
	MimeType string
	Reader   io.Reader
}

// Processor handles dataset upload, listing, and deletion
type Processor struct {
	datasets    ports.DatasetRepository
	analyses    ports.AnalysisRepository
	fileStorage ports.FileStorage
	maxFileSize int64
	locks       *KeyedMutex
	logger      *internal.Logger
	now         func() time.Time
}

// NewProcessor creates a new dataset processor. A non-positive maxFileSize
// selects DefaultMaxFileSize.
func NewProcessor(datasets ports.DatasetRepository, analyses ports.AnalysisRepository, fileStorage ports.FileStorage, maxFileSize int64, logger *internal.Logger) *Processor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Processor{
		datasets:    datasets,
		analyses:    analyses,
		fileStorage: fileStorage,
		maxFileSize: maxFileSize,
		locks:       NewKeyedMutex(),
		logger:      logger.OrDefault(),
		now:         time.Now,
	}
}

// Locks returns the per-dataset locks Delete takes. Analysis runs share them so
// a delete never interleaves with a run of the same dataset.
func (p *Processor) Locks() *KeyedMutex {
	return p.locks
}

// ProcessUpload validates, stores, and parses an uploaded file
func (p *Processor) ProcessUpload(ctx context.Context, upload Upload) (*dataset.Dataset, error) {
	if upload.Reader == nil {
		return nil, apperrors.New(apperrors.CodeNoFile, "No file uploaded. Please select a CSV file to upload.")
	}
	if upload.Size == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyFile, "The uploaded file is empty. Please upload a valid CSV file with data.")
	}
	if upload.Size > p.maxFileSize {
		return nil, fileTooLarge(p.maxFileSize)
	}
	fileType, ok := excel.FileTypeFromName(upload.Filename)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnsupportedFileType, "Only CSV and XLSX files are supported.")
	}

	p.logger.Info("[DatasetProcessor] Starting processing for file: %s", upload.Filename)

	filePath, err := p.fileStorage.Store(ctx, io.LimitReader(upload.Reader, p.maxFileSize+1), upload.Filename)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to store uploaded file %s", upload.Filename)
	}

	ds, err := p.parseStored(ctx, filePath, fileType)
	if err != nil {
		if delErr := p.fileStorage.Delete(ctx, filePath); delErr != nil {
			p.logger.Warn("[DatasetProcessor] Failed to clean up %s: %v", filePath, delErr)
		}
		return nil, err
	}

	ds.OriginalName = upload.Filename
	ds.FilePath = filePath
	ds.MimeType = upload.MimeType
	if ds.MimeType == "" {
		ds.MimeType = mimeTypes[fileType]
	}
	ds.UploadedAt = p.now()

	if err := p.datasets.Create(ctx, ds); err != nil {
		_ = p.fileStorage.Delete(ctx, filePath)
		return nil, apperrors.Wrapf(err, "failed to save dataset %s", ds.ID)
	}

	p.logger.Info("[DatasetProcessor] Stored dataset %s (%s) with %d columns and %d rows",
		ds.ID, upload.Filename, len(ds.Headers), ds.RowCount)
	return ds, nil
}

func (p *Processor) parseStored(ctx context.Context, filePath string, fileType excel.FileType) (*dataset.Dataset, error) {
	rc, err := p.fileStorage.GetReader(ctx, filePath)
	if err != nil {
		return nil, readError(err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, readError(err)
	}
	if int64(len(content)) > p.maxFileSize {
		return nil, fileTooLarge(p.maxFileSize)
	}
	return Parse(fileType, content)
}

// LoadFile parses a local file with the same rules as an upload, without
// storing it
func LoadFile(path string) (*dataset.Dataset, error) {
	fileType, ok := excel.FileTypeFromName(path)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnsupportedFileType, "Only CSV and XLSX files are supported.")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(err)
	}
	if len(content) == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyFile, "The file is empty.")
	}

	ds, err := Parse(fileType, content)
	if err != nil {
		return nil, err
	}
	ds.OriginalName = filepath.Base(path)
	ds.MimeType = mimeTypes[fileType]
	ds.UploadedAt = time.Now()
	return ds, nil
}

// Parse builds a dataset from raw file content. Headers are normalized, cell
// values are kept untrimmed, ragged rows are padded or truncated to the header
// width, and blank rows are dropped.
func Parse(fileType excel.FileType, content []byte) (*dataset.Dataset, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyContent, "The file appears to be empty or contains no readable data.")
	}

	table, err := excel.NewDataReader(fileType).Read(bytes.NewReader(content))
	if err != nil {
		return nil, readError(err)
	}

	if len(table.Records) == 0 {
		return nil, apperrors.New(apperrors.CodeNoData, "The file contains no data rows. Please ensure your file has data below the header row.")
	}
	if !hasHeader(table.Headers) {
		return nil, apperrors.New(apperrors.CodeNoHeaders, "The file must have column headers in the first row.")
	}

	headers := dataset.NormalizeHeaders(table.Headers)
	rows := make([]*dataset.Row, 0, len(table.Records))
	for _, record := range table.Records {
		row := dataset.NewRowFromValues(headers, record)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.CodeNoValidData, "All data rows appear to be empty. Please check your file format.")
	}

	return &dataset.Dataset{
		ID:       core.NewID(),
		FileSize: int64(len(content)),
		Headers:  headers,
		Rows:     rows,
		RowCount: len(rows),
	}, nil
}

func hasHeader(headers []string) bool {
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			return true
		}
	}
	return false
}

func readError(err error) error {
	return &apperrors.AppError{
		Code:    apperrors.CodeReadError,
		Message: "Unable to read the uploaded file. Please ensure it is a valid CSV or XLSX file.",
		Cause:   err,
	}
}

func fileTooLarge(limit int64) error {
	return apperrors.New(apperrors.CodeFileTooLarge, "File exceeds the maximum size of "+formatSize(limit)+".")
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + "MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

// GetInfo returns the dataset listing view with a preview
func (p *Processor) GetInfo(ctx context.Context, id core.ID) (dataset.Info, error) {
	ds, err := p.get(ctx, id)
	if err != nil {
		return dataset.Info{}, err
	}
	return ds.Info(PreviewRows), nil
}

// List returns every uploaded dataset without previews
func (p *Processor) List(ctx context.Context) ([]dataset.Info, error) {
	all, err := p.datasets.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list datasets")
	}
	out := make([]dataset.Info, 0, len(all))
	for _, ds := range all {
		out = append(out, ds.Info(0))
	}
	return out, nil
}

// Delete removes the backing file, the dataset, and its analysis result
func (p *Processor) Delete(ctx context.Context, id core.ID) error {
	unlock := p.locks.Lock(id)
	defer unlock()

	ds, err := p.get(ctx, id)
	if err != nil {
		return err
	}

	if ds.FilePath != "" {
		if err := p.fileStorage.Delete(ctx, ds.FilePath); err != nil {
			return apperrors.Wrapf(err, "failed to delete file of dataset %s", id)
		}
	}
	if err := p.analyses.Delete(ctx, id); err != nil {
		return apperrors.Wrapf(err, "failed to delete analysis result of dataset %s", id)
	}
	if err := p.datasets.Delete(ctx, id); err != nil {
		if core.IsNotFoundError(err) {
			return apperrors.DatasetNotFound(id.String())
		}
		return apperrors.Wrapf(err, "failed to delete dataset %s", id)
	}

	p.logger.Info("[DatasetProcessor] Deleted dataset %s", id)
	return nil
}

func (p *Processor) get(ctx context.Context, id core.ID) (*dataset.Dataset, error) {
	ds, err := p.datasets.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, apperrors.DatasetNotFound(id.String())
		}
		return nil, apperrors.Wrapf(err, "failed to load dataset %s", id)
	}
	return ds, nil
}
