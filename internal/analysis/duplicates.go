package analysis

import (
	"strings"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"
)

// firstKeyContaining returns the first non-synthetic key of the row whose
// lower-cased name contains any of the needles
func firstKeyContaining(row *dataset.Row, needles ...string) (string, bool) {
	for _, k := range row.Keys() {
		if isSyntheticColumn(k) {
			continue
		}
		if containsAny(strings.ToLower(k), needles) {
			return k, true
		}
	}
	return "", false
}

// IdentityKey builds the duplicate-detection key of a row from raw values.
// People are keyed by email, everything else by "name|domain".
func IdentityKey(t quality.DatasetType, row *dataset.Row) string {
	value := func(needles ...string) string {
		if k, ok := firstKeyContaining(row, needles...); ok {
			return strings.ToLower(strings.TrimSpace(row.Value(k)))
		}
		return ""
	}

	if t == quality.TypePeople {
		return value("email")
	}
	return value("name", "company") + "|" + value("domain")
}

// FindDuplicates groups rows sharing an identity key. Groups come back in
// first-seen order and row numbers are 1-based. The second return value is
// the excess count, the sum of (size - 1) over all groups.
func FindDuplicates(t quality.DatasetType, rows []*dataset.Row) ([]quality.DuplicateGroup, int) {
	var order []string
	seen := make(map[string][]int)

	for i, row := range rows {
		key := IdentityKey(t, row)
		if key == "" || key == "|" {
			continue
		}
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], i+1)
	}

	var groups []quality.DuplicateGroup
	excess := 0
	for _, key := range order {
		members := seen[key]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, quality.DuplicateGroup{Key: key, Rows: members, Count: len(members)})
		excess += len(members) - 1
	}
	return groups, excess
}
