// Package profiling computes informational per-column profiles. Profiles never
// produce issues and never feed the quality score.
package profiling

import (
	"strings"
	"unicode/utf8"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal/validators"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Profiler builds column profiles
type Profiler struct{}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileColumns profiles every header across rows, in header order
func (p *Profiler) ProfileColumns(headers []string, rows []*dataset.Row) []quality.ColumnProfile {
	profiles := make([]quality.ColumnProfile, 0, len(headers))
	for _, h := range headers {
		values := make([]string, len(rows))
		for i, r := range rows {
			values[i] = r.Value(h)
		}
		profiles = append(profiles, p.ProfileColumn(h, values))
	}
	return profiles
}

// ProfileColumn profiles one column's values
func (p *Profiler) ProfileColumn(name string, values []string) quality.ColumnProfile {
	fieldType := validators.DetectFieldType(name)
	profile := quality.ColumnProfile{
		Name:         name,
		InferredType: string(fieldType),
	}

	distinct := make(map[string]struct{})
	lengths := make([]float64, 0, len(values))
	confidences := make([]float64, 0, len(values))
	filled := 0

	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		filled++
		distinct[v] = struct{}{}
		lengths = append(lengths, float64(utf8.RuneCountInString(v)))
		confidences = append(confidences, validators.ConfidenceScore(v, fieldType))

		for _, label := range validators.DetectValueIssues(v, fieldType) {
			switch label {
			case validators.ValueInvalidFormat:
				profile.InvalidCount++
			case validators.ValuePlaceholder:
				profile.PlaceholderCount++
			case validators.ValueTooLong:
				profile.TooLongCount++
			case validators.ValueSuspicious:
				profile.SuspiciousCount++
			}
		}
	}

	if len(values) > 0 {
		profile.FillRate = scalar.Round(float64(filled)/float64(len(values)), 2)
	}
	profile.DistinctCount = len(distinct)

	// lengths are finite and non-empty here, so the summary cannot fail
	if summary, err := SummarizeLengths(lengths); err == nil {
		profile.MeanLength = summary.Mean
		profile.MedianLength = summary.Median
		profile.P90Length = summary.P90
	}
	// mean over filled values only; blanks are already reflected in FillRate
	if mean, err := stats.Mean(confidences); err == nil {
		profile.MeanConfidence = scalar.Round(mean, 2)
	}
	return profile
}
