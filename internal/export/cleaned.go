// Package export builds the read-only projections over a stored analysis: the
// cleaned dataset and the diagnostic report.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"

	"github.com/montanaflynn/stats"
)

// Defaults written into the synthetic export columns
const (
	NotMapped         = "Not Mapped"
	NoIssues          = "None"
	DefaultConfidence = "1.00"
)

// Table is an ordered set of columns and rows
type Table struct {
	Headers []string
	Rows    []*dataset.Row
}

// Records returns the rows as string slices in header order
func (t Table) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rec := make([]string, len(t.Headers))
		for j, h := range t.Headers {
			rec[j] = r.Value(h)
		}
		records[i] = rec
	}
	return records
}

// Limit returns a table with at most n rows
func (t Table) Limit(n int) Table {
	if n >= 0 && n < len(t.Rows) {
		t.Rows = t.Rows[:n]
	}
	return t
}

// CleanedTable applies the stored corrections to a copy of the dataset and
// adds job_function, confidence_score and issues_detected to every row.
// Without a result the raw rows come back unchanged.
func CleanedTable(ds *dataset.Dataset, result *quality.AnalysisResult) Table {
	if result == nil {
		rows := make([]*dataset.Row, len(ds.Rows))
		for i, r := range ds.Rows {
			rows[i] = r.Clone()
		}
		return Table{Headers: append([]string(nil), ds.Headers...), Rows: rows}
	}

	headers := cleanedHeaders(ds.Headers)

	issuesByRow := make(map[int][]quality.Issue)
	for _, is := range result.Issues {
		issuesByRow[is.Row] = append(issuesByRow[is.Row], is)
	}
	correctionsByRow := make(map[int][]quality.Correction)
	for _, c := range result.Corrections {
		correctionsByRow[c.Row] = append(correctionsByRow[c.Row], c)
	}

	rows := make([]*dataset.Row, len(ds.Rows))
	for i, src := range ds.Rows {
		rowNum := i + 1
		rows[i] = cleanRow(headers, src, issuesByRow[rowNum], correctionsByRow[rowNum])
	}
	return Table{Headers: headers, Rows: rows}
}

func cleanedHeaders(original []string) []string {
	headers := append([]string(nil), original...)
	for _, col := range []string{dataset.ColumnJobFunction, dataset.ColumnConfidenceScore, dataset.ColumnIssuesDetected} {
		present := false
		for _, h := range original {
			if h == col {
				present = true
				break
			}
		}
		if !present {
			headers = append(headers, col)
		}
	}
	return headers
}

func cleanRow(headers []string, src *dataset.Row, issues []quality.Issue, corrections []quality.Correction) *dataset.Row {
	values := src.Clone()

	// later corrections on the same field win
	for _, c := range corrections {
		if values.Has(c.Field) {
			values.Set(c.Field, c.Suggestion)
		}
	}

	row := dataset.NewRow()
	for _, h := range headers {
		row.Set(h, values.Value(h))
	}

	row.Set(dataset.ColumnIssuesDetected, IssuesSummary(issues))

	if strings.TrimSpace(src.Value(dataset.ColumnJobFunction)) == "" {
		row.Set(dataset.ColumnJobFunction, NotMapped)
	}

	confs := make([]float64, 0, len(corrections)+1)
	for _, c := range corrections {
		confs = append(confs, c.Confidence)
	}
	if raw := strings.TrimSpace(src.Value(dataset.ColumnConfidenceScore)); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			confs = append(confs, v)
		}
	}
	row.Set(dataset.ColumnConfidenceScore, MeanConfidence(confs))
	return row
}

// IssuesSummary joins "field: issue" pairs with "; ", or returns "None"
func IssuesSummary(issues []quality.Issue) string {
	if len(issues) == 0 {
		return NoIssues
	}
	parts := make([]string, len(issues))
	for i, is := range issues {
		parts[i] = fmt.Sprintf("%s: %s", is.Field, is.Issue)
	}
	return strings.Join(parts, "; ")
}

// MeanConfidence formats the plain mean to two decimals, "1.00" when empty
func MeanConfidence(confs []float64) string {
	if len(confs) == 0 {
		return DefaultConfidence
	}
	mean, err := stats.Mean(confs)
	if err != nil {
		return DefaultConfidence
	}
	return strconv.FormatFloat(mean, 'f', 2, 64)
}
