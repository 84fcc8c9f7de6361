package analysis

import (
	"datasentry/domain/quality"

	"gonum.org/v1/gonum/floats/scalar"
)

// Tally holds the aggregate counts the score is derived from
type Tally struct {
	ByKind     map[quality.IssueKind]int
	Missing    int
	Invalid    int
	Duplicates int
	Rows       int
	Columns    int
}

// NewTally counts issues by kind and adds the synthetic Duplicates kind when
// duplicates is positive
func NewTally(issues []quality.Issue, duplicates, rows, columns int) Tally {
	byKind := make(map[quality.IssueKind]int)
	for _, is := range issues {
		byKind[is.Kind]++
	}
	if duplicates > 0 {
		byKind[quality.KindDuplicates] = duplicates
	}
	return Tally{
		ByKind:     byKind,
		Missing:    byKind[quality.KindMissingData],
		Invalid:    byKind[quality.KindInvalidFormat] + byKind[quality.KindSchemaMismatch],
		Duplicates: duplicates,
		Rows:       rows,
		Columns:    columns,
	}
}

// Score is 100 minus the missing, invalid and duplicate percentages, rounded
// and clamped to [0, 100]. Missing and invalid are measured against
// rows*columns field slots, duplicates against rows.
func (t Tally) Score() int {
	totalFields := float64(t.Rows * t.Columns)

	var missingPct, invalidPct, duplicatePct float64
	if totalFields > 0 {
		missingPct = float64(t.Missing) / totalFields * 100
		invalidPct = float64(t.Invalid) / totalFields * 100
	}
	if t.Rows > 0 {
		duplicatePct = float64(t.Duplicates) / float64(t.Rows) * 100
	}

	score := int(scalar.Round(100-(missingPct+invalidPct+duplicatePct), 0))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FlaggedRecords counts distinct rows named by any issue or duplicate group
func FlaggedRecords(issues []quality.Issue, groups []quality.DuplicateGroup) int {
	flagged := make(map[int]struct{})
	for _, is := range issues {
		flagged[is.Row] = struct{}{}
	}
	for _, g := range groups {
		for _, r := range g.Rows {
			flagged[r] = struct{}{}
		}
	}
	return len(flagged)
}
