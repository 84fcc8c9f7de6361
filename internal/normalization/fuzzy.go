package normalization

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"gonum.org/v1/gonum/floats/scalar"
)

// MatchThreshold is the minimum similarity for a vocabulary match
const MatchThreshold = 0.6

// Similarity is 1 minus the case-insensitive edit distance normalized by the
// longer string's length. Two empty strings are identical.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// BestMatch returns the most similar entry. Ties go to the earliest entry.
// ok is false when nothing reaches MatchThreshold.
func (v Vocabulary) BestMatch(input string) (match string, similarity float64, ok bool) {
	best := -1.0
	for _, candidate := range v {
		if s := Similarity(input, candidate); s > best {
			best = s
			match = candidate
		}
	}
	if best < MatchThreshold {
		return "", 0, false
	}
	return match, best, true
}

func round2(x float64) float64 {
	return scalar.Round(x, 2)
}
