package analysis

import (
	"strings"

	"datasentry/domain/quality"
)

// DetectType infers the record shape from the header names. Company markers
// win over person markers.
func DetectType(headers []string) quality.DatasetType {
	joined := strings.ToLower(strings.Join(headers, " "))
	switch {
	case strings.Contains(joined, "revenue") || strings.Contains(joined, "industry"):
		return quality.TypeCompanies
	case strings.Contains(joined, "title") || strings.Contains(joined, "email"):
		return quality.TypePeople
	default:
		return quality.TypeUnknown
	}
}

// ResolveType applies a caller hint, detecting from headers when the hint is auto
func ResolveType(hint quality.DatasetType, headers []string) quality.DatasetType {
	switch hint {
	case quality.TypeCompanies, quality.TypePeople:
		return hint
	default:
		return DetectType(headers)
	}
}
