package dataset

import (
	"strconv"
	"strings"
	"time"

	"datasentry/domain/core"
)

// Synthetic columns the pipeline may add to a row
const (
	ColumnJobFunction     = "job_function"
	ColumnConfidenceScore = "confidence_score"
	ColumnIssuesDetected  = "issues_detected"
)

// Dataset is one uploaded table
type Dataset struct {
	ID           core.ID   `json:"id"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path,omitempty"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type,omitempty"`
	Headers      []string  `json:"headers"`
	Rows         []*Row    `json:"rows"`
	RowCount     int       `json:"row_count"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Clone returns a deep copy, so callers can attach synthetic columns without
// touching the stored value
func (d *Dataset) Clone() *Dataset {
	c := *d
	c.Headers = append([]string(nil), d.Headers...)
	c.Rows = make([]*Row, len(d.Rows))
	for i, r := range d.Rows {
		c.Rows[i] = r.Clone()
	}
	return &c
}

// Preview returns at most n rows
func (d *Dataset) Preview(n int) []*Row {
	if n < 0 || n >= len(d.Rows) {
		return d.Rows
	}
	return d.Rows[:n]
}

// Info is the lightweight listing view of a dataset
type Info struct {
	ID           core.ID   `json:"fileId"`
	OriginalName string    `json:"originalName"`
	Headers      []string  `json:"headers"`
	RowCount     int       `json:"rowCount"`
	FileSize     int64     `json:"fileSize"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Preview      []*Row    `json:"preview,omitempty"`
}

// Info builds the listing view with a preview of at most previewRows rows
func (d *Dataset) Info(previewRows int) Info {
	return Info{
		ID:           d.ID,
		OriginalName: d.OriginalName,
		Headers:      d.Headers,
		RowCount:     d.RowCount,
		FileSize:     d.FileSize,
		UploadedAt:   d.UploadedAt,
		Preview:      d.Preview(previewRows),
	}
}

// NormalizeHeader converts a raw column name to its canonical identifier form:
// trimmed, lower-cased, with each run of characters outside [a-z0-9_] collapsed to "_".
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	b.Grow(len(h))
	inRun := false
	for _, r := range h {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('_')
			inRun = true
		}
	}
	return b.String()
}

// NormalizeHeaders normalizes every header and disambiguates collisions with a
// numeric suffix ("email", "email_2", ...). Blank headers become column_<n>.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	next := make(map[string]int, len(raw))
	for i, h := range raw {
		base := NormalizeHeader(h)
		if base == "" {
			base = "column_" + strconv.Itoa(i+1)
		}
		name := base
		for used[name] {
			if next[base] == 0 {
				next[base] = 2
			}
			name = base + "_" + strconv.Itoa(next[base])
			next[base]++
		}
		used[name] = true
		out[i] = name
	}
	return out
}
