package app

import (
	"context"
	"sort"
	"time"

	"datasentry/ai"
	"datasentry/domain/core"
	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal"
	"datasentry/internal/analysis"
	ingest "datasentry/internal/dataset"
	"datasentry/internal/errors"
	"datasentry/internal/export"
	"datasentry/ports"
)

// QualityService orchestrates analysis runs and the projections over their results
type QualityService struct {
	datasets ports.DatasetRepository
	analyses ports.AnalysisRepository
	analyzer *analysis.Analyzer
	insights *ai.InsightGenerator
	locks    *ingest.KeyedMutex
	logger   *internal.Logger
	now      func() time.Time
}

// NewQualityService creates a quality service. A nil insight generator
// answers with heuristic insights only. locks should be the dataset
// processor's so deletes wait for in-flight runs; nil creates private ones.
func NewQualityService(datasets ports.DatasetRepository, analyses ports.AnalysisRepository, analyzer *analysis.Analyzer, insights *ai.InsightGenerator, locks *ingest.KeyedMutex, logger *internal.Logger) *QualityService {
	if locks == nil {
		locks = ingest.NewKeyedMutex()
	}
	return &QualityService{
		datasets: datasets,
		analyses: analyses,
		analyzer: analyzer,
		insights: insights,
		locks:    locks,
		logger:   logger.OrDefault(),
		now:      time.Now,
	}
}

// Analyze runs the pipeline for a stored dataset and replaces its result.
// The run is detached from ctx cancellation; AI calls keep their own timeouts.
// Runs for the same dataset are serialized.
func (s *QualityService) Analyze(ctx context.Context, id core.ID, hint quality.DatasetType) (*quality.AnalysisResult, error) {
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.Lock(id)
	defer unlock()

	stored, err := s.loadDataset(ctx, id)
	if err != nil {
		return nil, err
	}

	ds := stored.Clone()
	result, err := s.analyzer.Analyze(ctx, ds, hint)
	if err != nil {
		return nil, errors.Wrapf(err, "analysis of dataset %s failed", id)
	}

	if err := s.datasets.Update(ctx, ds); err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.DatasetNotFound(id.String())
		}
		return nil, errors.Wrapf(err, "failed to store mapped job functions of dataset %s", id)
	}
	if err := s.analyses.Save(ctx, result); err != nil {
		return nil, errors.Wrapf(err, "failed to store analysis result of dataset %s", id)
	}
	return result, nil
}

// Result returns the stored analysis for a dataset
func (s *QualityService) Result(ctx context.Context, id core.ID) (*quality.AnalysisResult, error) {
	result, err := s.analyses.GetByDatasetID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.AnalysisNotFound(id.String())
		}
		return nil, errors.Wrapf(err, "failed to load analysis result of dataset %s", id)
	}
	return result, nil
}

// Summaries lists analyzed datasets, most recent analysis first
func (s *QualityService) Summaries(ctx context.Context) ([]quality.Summary, error) {
	summaries, err := s.analyses.ListSummaries(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list analyses")
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AnalyzedAt.After(summaries[j].AnalyzedAt)
	})
	return summaries, nil
}

// Report builds the QA report. It fails with ANALYSIS_NOT_FOUND before the
// dataset has been analyzed.
func (s *QualityService) Report(ctx context.Context, id core.ID) (*export.Report, error) {
	ds, err := s.loadDataset(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := s.Result(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.BuildReport(ds, result, s.now())
}

// Export encodes the cleaned dataset. Without a stored analysis the raw rows
// are exported.
func (s *QualityService) Export(ctx context.Context, id core.ID, opts export.Options) (*export.Output, error) {
	ds, err := s.loadDataset(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.analyses.GetByDatasetID(ctx, id)
	if err != nil {
		if !core.IsNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to load analysis result of dataset %s", id)
		}
		s.logger.Debug("[QualityService] No analysis for %s, exporting raw rows", id)
		result = nil
	}
	return export.Export(ds, result, opts, s.now())
}

// Insights produces a business reading of a stored analysis
func (s *QualityService) Insights(ctx context.Context, id core.ID) (ai.Insights, error) {
	ds, err := s.loadDataset(ctx, id)
	if err != nil {
		return ai.Insights{}, err
	}
	result, err := s.Result(ctx, id)
	if err != nil {
		return ai.Insights{}, err
	}

	req := ai.InsightRequest{
		FileName:     ds.OriginalName,
		Headers:      ds.Headers,
		QualityScore: result.QualityScore,
		IssuesCount:  result.IssuesCount,
		Duplicates:   result.Duplicates,
	}
	return s.insights.Generate(ctx, req), nil
}

func (s *QualityService) loadDataset(ctx context.Context, id core.ID) (*dataset.Dataset, error) {
	ds, err := s.datasets.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.DatasetNotFound(id.String())
		}
		return nil, errors.Wrapf(err, "failed to load dataset %s", id)
	}
	return ds, nil
}
