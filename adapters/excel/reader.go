// Package excel reads and writes the tabular formats accepted for upload and
// produced for export: CSV and XLSX.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// FileTypeFromName maps a file name to its format by extension
func FileTypeFromName(name string) (FileType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FileTypeCSV, true
	case ".xlsx":
		return FileTypeXLSX, true
	default:
		return "", false
	}
}

// DataReader reads CSV and XLSX content
type DataReader struct {
	fileType FileType
}

// NewDataReader creates a reader for the given format
func NewDataReader(fileType FileType) *DataReader {
	return &DataReader{fileType: fileType}
}

// ReadFile opens path and reads it with the format implied by its extension
func ReadFile(path string) (*RawTable, error) {
	fileType, ok := FileTypeFromName(path)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", fileType, err)
	}
	defer f.Close()
	return NewDataReader(fileType).Read(f)
}

// Read parses r. An input with no rows at all yields an empty table.
func (r *DataReader) Read(in io.Reader) (*RawTable, error) {
	var rows [][]string
	var err error

	switch r.fileType {
	case FileTypeCSV:
		rows, err = r.readCSV(in)
	case FileTypeXLSX:
		rows, err = r.readExcel(in)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	table := &RawTable{}
	if len(rows) == 0 {
		return table, nil
	}
	table.Headers = rows[0]
	if len(table.Headers) > 0 {
		table.Headers[0] = strings.TrimPrefix(table.Headers[0], utf8BOM)
	}
	table.Records = rows[1:]
	return table, nil
}

func (r *DataReader) readCSV(in io.Reader) ([][]string, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// readExcel reads the first sheet of the workbook
func (r *DataReader) readExcel(in io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
