package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"datasentry/adapters/excel"
	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal/errors"
)

// PreviewRows is the row limit of a preview export
const PreviewRows = 20

// Format is an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name. An empty name is csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", errors.UnsupportedFormat(s)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Options selects the export encoding
type Options struct {
	Format  Format
	Preview bool
}

// Output is an encoded export
type Output struct {
	Filename    string
	ContentType string
	Rows        int
	Data        []byte
}

// Export encodes the cleaned table. now stamps the suggested file name.
func Export(ds *dataset.Dataset, result *quality.AnalysisResult, opts Options, now time.Time) (*Output, error) {
	format := opts.Format
	if format == "" {
		format = FormatCSV
	}

	table := CleanedTable(ds, result)
	if opts.Preview {
		table = table.Limit(PreviewRows)
	}

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := excel.WriteCSV(&buf, table.Headers, table.Records()); err != nil {
			return nil, errors.Wrap(err, "failed to write CSV export")
		}
	case FormatXLSX:
		if err := excel.WriteXLSX(&buf, table.Headers, table.Records()); err != nil {
			return nil, errors.Wrap(err, "failed to write XLSX export")
		}
	case FormatJSON:
		rows := table.Rows
		if rows == nil {
			rows = []*dataset.Row{}
		}
		data, err := json.Marshal(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode JSON export")
		}
		buf.Write(data)
	default:
		return nil, errors.UnsupportedFormat(string(format))
	}

	return &Output{
		Filename:    Filename(result, format, now),
		ContentType: format.ContentType(),
		Rows:        len(table.Rows),
		Data:        buf.Bytes(),
	}, nil
}

// Filename is cleaned_<datasetType>_<unix millis>.<ext>, using "data" when no
// analysis exists
func Filename(result *quality.AnalysisResult, format Format, now time.Time) string {
	kind := "data"
	if result != nil && result.DatasetType != "" {
		kind = string(result.DatasetType)
	}
	return fmt.Sprintf("cleaned_%s_%d.%s", kind, now.UnixMilli(), format)
}
