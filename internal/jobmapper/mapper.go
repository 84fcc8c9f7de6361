// Package jobmapper resolves free-text job titles to canonical job functions,
// first through a ground-truth table and then through an AI classifier.
package jobmapper

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"datasentry/ai"
	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal"
	"datasentry/ports"
)

const (
	groundTruthConfidence = 0.95
	defaultAIConfidence   = 0.8
)

// Mapper holds the ground-truth table and the AI fallback.
// Reloads swap the whole table under a write lock.
type Mapper struct {
	mu     sync.RWMutex
	titles map[string]string

	classifier ports.JobFunctionClassifier
	timeout    time.Duration
	logger     *internal.Logger
}

// NewMapper creates a mapper with an empty table. classifier may be nil, in
// which case table misses resolve to Unmapped.
func NewMapper(classifier ports.JobFunctionClassifier, timeout time.Duration, logger *internal.Logger) *Mapper {
	return &Mapper{
		titles:     make(map[string]string),
		classifier: classifier,
		timeout:    timeout,
		logger:     logger.OrDefault(),
	}
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// LoadGroundTruth replaces the table with the rows of a CSV that has a
// current_job_title (or title) column and a job_function (or function) column.
// It returns the number of loaded mappings.
func (m *Mapper) LoadGroundTruth(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read ground truth CSV: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("ground truth CSV is empty")
	}

	cols := make(map[string]int)
	for i, h := range records[0] {
		cols[dataset.NormalizeHeader(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	titleCols := presentColumns(cols, "current_job_title", "title")
	funcCols := presentColumns(cols, "job_function", "function")
	if len(titleCols) == 0 || len(funcCols) == 0 {
		return 0, fmt.Errorf("ground truth CSV needs title and job function columns")
	}

	titles := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		title := firstValue(rec, titleCols)
		function := firstValue(rec, funcCols)
		if title != "" && function != "" {
			titles[titleKey(title)] = function
		}
	}

	m.mu.Lock()
	m.titles = titles
	m.mu.Unlock()

	m.logger.Info("[JobMapper] Loaded %d ground truth job mappings", len(titles))
	return len(titles), nil
}

// LoadGroundTruthFile loads the table from a file path
func (m *Mapper) LoadGroundTruthFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open ground truth file: %w", err)
	}
	defer f.Close()
	return m.LoadGroundTruth(f)
}

func presentColumns(cols map[string]int, names ...string) []int {
	var out []int
	for _, n := range names {
		if i, ok := cols[n]; ok {
			out = append(out, i)
		}
	}
	return out
}

func firstValue(rec []string, idx []int) string {
	for _, i := range idx {
		if i < len(rec) {
			if v := strings.TrimSpace(rec[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// Size returns the number of ground-truth mappings
func (m *Mapper) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.titles)
}

// MapJobTitle resolves a title. It never returns an error: collaborator
// failures resolve to Unmapped with source "failed".
func (m *Mapper) MapJobTitle(ctx context.Context, title string) quality.JobMapping {
	key := titleKey(title)
	if key == "" {
		return quality.JobMapping{Function: quality.FunctionUnknown, Source: quality.SourceNone}
	}

	m.mu.RLock()
	function, ok := m.titles[key]
	m.mu.RUnlock()
	if ok {
		return quality.JobMapping{Function: function, Confidence: groundTruthConfidence, Source: quality.SourceGroundTruth}
	}

	failed := quality.JobMapping{Function: quality.FunctionUnmapped, Source: quality.SourceFailed}
	if m.classifier == nil {
		return failed
	}

	suggestion, ok := ai.TryOperation(ctx, m.timeout, "job function mapping", func(ctx context.Context) (*ports.JobFunctionSuggestion, error) {
		return m.classifier.ClassifyJobTitle(ctx, title)
	}, nil)
	if !ok || suggestion == nil || strings.TrimSpace(suggestion.Function) == "" {
		return failed
	}

	confidence := suggestion.Confidence
	if confidence <= 0 {
		confidence = defaultAIConfidence
	}
	if confidence > 1 {
		confidence = 1
	}

	return quality.JobMapping{
		Function:   strings.TrimSpace(suggestion.Function),
		Confidence: confidence,
		Source:     quality.SourceAI,
		Reason:     suggestion.Reason,
	}
}
