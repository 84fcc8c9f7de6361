package analysis

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal/normalization"
)

var (
	casingKeys = []string{"first name", "last name", "name", "company", "city", "country"}
	titleKeys  = []string{"title", "job title", "role", "position"}
)

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// clearMappedColumns drops the job function a previous run attached, unless
// the uploaded file has a column of that name
func clearMappedColumns(row *dataset.Row, headers []string) {
	for _, key := range []string{dataset.ColumnJobFunction, dataset.ColumnConfidenceScore} {
		if !slices.Contains(headers, key) {
			row.Delete(key)
		}
	}
}

// isSyntheticColumn reports columns the pipeline writes itself
func isSyntheticColumn(key string) bool {
	switch key {
	case dataset.ColumnJobFunction, dataset.ColumnConfidenceScore, dataset.ColumnIssuesDetected:
		return true
	}
	return false
}

// TitleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest. Runs of spaces are kept as they are.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// CleanWhitespace returns the cleaning correction for a value with leading or
// trailing whitespace
func CleanWhitespace(row int, field, value string) (quality.Correction, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == value {
		return quality.Correction{}, false
	}
	return quality.Correction{
		Row:            row,
		Field:          field,
		Original:       value,
		Suggestion:     trimmed,
		Confidence:     1.0,
		Kind:           quality.CorrectionCleaning,
		Explanation:    "Removed unnecessary whitespace from the start/end of the field.",
		Recommendation: "Fix whitespace at source.",
	}, true
}

func casingCorrection(row int, field, value, trimmed string) (quality.Correction, bool) {
	if trimmed == "" {
		return quality.Correction{}, false
	}
	perfected := TitleCase(trimmed)
	if perfected == trimmed {
		return quality.Correction{}, false
	}
	return quality.Correction{
		Row:            row,
		Field:          field,
		Original:       value,
		Suggestion:     perfected,
		Confidence:     0.95,
		Kind:           quality.CorrectionFormatting,
		Explanation:    "Corrected text casing to standard Title Case format.",
		Recommendation: "Enable title-case validation in CRM.",
	}, true
}

func industryCorrection(row int, field, value, trimmed string) (quality.Correction, bool) {
	norm := normalization.NormalizeIndustry(trimmed)
	if !norm.Changed {
		return quality.Correction{}, false
	}
	return quality.Correction{
		Row:            row,
		Field:          field,
		Original:       value,
		Suggestion:     norm.Value,
		Confidence:     norm.Confidence,
		Kind:           quality.CorrectionNormalization,
		Explanation:    "Normalized industry name to standard business category.",
		Recommendation: "Use standardized industry labels.",
	}, true
}

func mappingCorrection(row int, field, value, trimmed string, m quality.JobMapping) (quality.Correction, bool) {
	if strings.EqualFold(m.Function, trimmed) {
		return quality.Correction{}, false
	}
	return quality.Correction{
		Row:            row,
		Field:          field,
		Original:       value,
		Suggestion:     m.Function,
		Confidence:     m.Confidence,
		Kind:           quality.CorrectionMapping,
		Explanation:    fmt.Sprintf("Mapped job title to business function: %s (Source: %s)", m.Function, m.Source),
		Recommendation: "Use role-based job functions.",
	}, true
}

func emailCorrection(row int, field, value, trimmed string) (quality.Correction, bool) {
	s, ok := normalization.SuggestDomainCorrection(trimmed)
	if !ok {
		return quality.Correction{}, false
	}
	return quality.Correction{
		Row:            row,
		Field:          field,
		Original:       value,
		Suggestion:     s.Email,
		Confidence:     s.Confidence,
		Kind:           quality.CorrectionRepair,
		Explanation:    fmt.Sprintf("Identified and corrected potential typo in email domain: %s", s.Email),
		Recommendation: "Update email to corrected domain.",
	}, true
}
