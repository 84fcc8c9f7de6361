// Package analysis runs the data-quality pipeline over one dataset: record
// validation, correction discovery, bounded AI enrichment, duplicate grouping
// and score aggregation.
package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"datasentry/ai"
	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal"
	"datasentry/internal/profiling"
	"datasentry/internal/validators"
	"datasentry/ports"
)

// TitleMapper resolves job titles to job functions. It must not fail.
type TitleMapper interface {
	MapJobTitle(ctx context.Context, title string) quality.JobMapping
}

// Config controls the pipeline
type Config struct {
	Concurrency int
	AITimeout   time.Duration
}

// Analyzer is the orchestration engine. It holds no per-run state, so one
// instance may serve concurrent analyses of different datasets.
type Analyzer struct {
	mapper   TitleMapper
	industry ports.IndustryNormalizer
	profiler *profiling.Profiler
	config   Config
	logger   *internal.Logger
	now      func() time.Time
}

// NewAnalyzer creates an analyzer. mapper and industry may be nil; a nil
// mapper skips job mapping and a nil industry normalizer skips AI enrichment.
func NewAnalyzer(mapper TitleMapper, industry ports.IndustryNormalizer, config Config, logger *internal.Logger) *Analyzer {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.AITimeout <= 0 {
		config.AITimeout = 10 * time.Second
	}
	return &Analyzer{
		mapper:   mapper,
		industry: industry,
		profiler: profiling.NewProfiler(),
		config:   config,
		logger:   logger.OrDefault(),
		now:      time.Now,
	}
}

// rowOutcome is everything one row contributes to the result
type rowOutcome struct {
	issues      []quality.Issue
	corrections []quality.Correction
	mappings    int
}

// Analyze runs the pipeline. Rows of ds receive job_function and
// confidence_score when a title is mapped, replacing any left by an earlier
// run; callers that must keep the stored dataset untouched pass a clone.
func (a *Analyzer) Analyze(ctx context.Context, ds *dataset.Dataset, hint quality.DatasetType) (*quality.AnalysisResult, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}

	start := a.now()
	datasetType := ResolveType(hint, ds.Headers)
	a.logger.Info("[Analyzer] Analyzing %s (%d rows, type %s)", ds.ID, len(ds.Rows), datasetType)

	for _, row := range ds.Rows {
		clearMappedColumns(row, ds.Headers)
	}

	outcomes, err := ParallelMap(ctx, ds.Rows, a.config.Concurrency, func(ctx context.Context, i int, row *dataset.Row) (rowOutcome, error) {
		return a.evaluateRow(ctx, datasetType, i, row), nil
	})
	if err != nil {
		return nil, fmt.Errorf("row evaluation failed: %w", err)
	}

	var issues []quality.Issue
	var corrections []quality.Correction
	mappings := 0
	for _, o := range outcomes {
		issues = append(issues, o.issues...)
		corrections = append(corrections, o.corrections...)
		mappings += o.mappings
	}

	groups, duplicates := FindDuplicates(datasetType, ds.Rows)
	tally := NewTally(issues, duplicates, len(ds.Rows), len(ds.Headers))

	result := &quality.AnalysisResult{
		DatasetID:        ds.ID,
		FileName:         ds.OriginalName,
		DatasetType:      datasetType,
		QualityScore:     tally.Score(),
		TotalRecords:     len(ds.Rows),
		TotalColumns:     len(ds.Headers),
		IssuesCount:      len(issues) + duplicates,
		IssuesByKind:     tally.ByKind,
		MissingFields:    tally.Missing,
		InvalidFields:    tally.Invalid,
		Duplicates:       duplicates,
		DuplicateGroups:  groups,
		FlaggedRecords:   FlaggedRecords(issues, groups),
		Issues:           capIssues(issues),
		Corrections:      capCorrections(corrections),
		TotalIssues:      len(issues),
		TotalCorrections: len(corrections),
		JobMappings:      mappings,
		ColumnProfiles:   a.profiler.ProfileColumns(ds.Headers, ds.Rows),
		UploadedAt:       ds.UploadedAt,
		AnalyzedAt:       a.now(),
	}

	a.logger.Info("[Analyzer] %s scored %d with %d issues and %d corrections in %v",
		ds.ID, result.QualityScore, result.IssuesCount, len(corrections), a.now().Sub(start))
	return result, nil
}

func capIssues(issues []quality.Issue) []quality.Issue {
	if issues == nil {
		return []quality.Issue{}
	}
	if len(issues) > quality.MaxIssues {
		return issues[:quality.MaxIssues]
	}
	return issues
}

func capCorrections(corrections []quality.Correction) []quality.Correction {
	if corrections == nil {
		return []quality.Correction{}
	}
	if len(corrections) > quality.MaxCorrections {
		return corrections[:quality.MaxCorrections]
	}
	return corrections
}

// evaluateRow runs every per-row step for the zero-based row index i
func (a *Analyzer) evaluateRow(ctx context.Context, t quality.DatasetType, i int, row *dataset.Row) rowOutcome {
	rowNum := i + 1
	var out rowOutcome

	out.issues = a.validateRow(t, rowNum, row)
	out.corrections, out.mappings = a.discoverCorrections(ctx, rowNum, row)

	if i < quality.AIEnrichmentRows {
		if c, ok := a.enrichIndustry(ctx, rowNum, row); ok {
			out.corrections = append(out.corrections, c)
		}
	}
	return out
}

// validateRow runs the record validator. A panicking validator drops this
// row's record-level issues and the run continues.
func (a *Analyzer) validateRow(t quality.DatasetType, rowNum int, row *dataset.Row) (issues []quality.Issue) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("[Analyzer] Record validation failed on row %d: %v", rowNum, r)
			issues = nil
		}
	}()

	issues = validators.ValidateRecord(t, row)
	for j := range issues {
		issues[j].Row = rowNum
		issues[j].Confidence = 1.0
	}
	return issues
}

// discoverCorrections runs the independent per-field checks in a fixed order
func (a *Analyzer) discoverCorrections(ctx context.Context, rowNum int, row *dataset.Row) (corrections []quality.Correction, mappings int) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("[Analyzer] Correction discovery failed on row %d: %v", rowNum, r)
			corrections, mappings = nil, 0
		}
	}()

	add := func(c quality.Correction, ok bool) {
		if ok {
			corrections = append(corrections, c)
		}
	}

	for _, field := range row.Keys() {
		if isSyntheticColumn(field) {
			continue
		}
		value, ok := row.Get(field)
		if !ok {
			continue
		}
		lower := strings.ToLower(field)
		trimmed := strings.TrimSpace(value)

		add(CleanWhitespace(rowNum, field, value))

		if containsAny(lower, casingKeys) {
			add(casingCorrection(rowNum, field, value, trimmed))
		}

		if strings.Contains(lower, "industry") {
			add(industryCorrection(rowNum, field, value, trimmed))
		}

		if a.mapper != nil && containsAny(lower, titleKeys) {
			m := a.mapper.MapJobTitle(ctx, trimmed)
			if m.Resolved() {
				row.Set(dataset.ColumnJobFunction, m.Function)
				row.Set(dataset.ColumnConfidenceScore, strconv.FormatFloat(m.Confidence, 'f', -1, 64))
				mappings++
				add(mappingCorrection(rowNum, field, value, trimmed, m))
			}
		}

		if strings.Contains(lower, "email") {
			add(emailCorrection(rowNum, field, value, trimmed))
		}
	}
	return corrections, mappings
}

// enrichIndustry asks the AI normalizer for a better industry label. Any
// failure is a silent skip.
func (a *Analyzer) enrichIndustry(ctx context.Context, rowNum int, row *dataset.Row) (quality.Correction, bool) {
	if a.industry == nil {
		return quality.Correction{}, false
	}
	key, ok := firstKeyContaining(row, "industry")
	if !ok {
		return quality.Correction{}, false
	}
	value := row.Value(key)
	if strings.TrimSpace(value) == "" {
		return quality.Correction{}, false
	}

	normalized, ok := ai.TryOperation(ctx, a.config.AITimeout, "industry enrichment", func(ctx context.Context) (string, error) {
		return a.industry.NormalizeIndustry(ctx, value)
	}, "")
	if !ok || normalized == "" || normalized == value {
		return quality.Correction{}, false
	}

	return quality.Correction{
		Row:         rowNum,
		Field:       key,
		Original:    value,
		Suggestion:  normalized,
		Confidence:  0.9,
		Kind:        quality.CorrectionAIPerfection,
		Explanation: "AI-normalized industry label.",
	}, true
}
