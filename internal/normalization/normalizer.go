// Package normalization maps noisy free text onto small fixed vocabularies using
// edit-distance similarity.
package normalization

import (
	"fmt"
	"strings"
)

// Result is the outcome of normalizing one value
type Result struct {
	Value      string  `json:"value"`
	Original   string  `json:"original,omitempty"`
	Confidence float64 `json:"confidence"`
	Changed    bool    `json:"changed"`
}

// DomainSuggestion is a proposed email with a repaired domain
type DomainSuggestion struct {
	Email      string  `json:"value"`
	Original   string  `json:"original"`
	Confidence float64 `json:"confidence"`
}

// NormalizeIndustry maps a value onto the industry vocabulary
func NormalizeIndustry(input string) Result {
	return normalize(input, Industries)
}

// NormalizeFunction maps a value onto the job function vocabulary, honouring the
// abbreviation dictionary first
func NormalizeFunction(input string) Result {
	if input == "" {
		return Result{Value: input}
	}
	if full, ok := functionAbbreviations[strings.ToLower(strings.TrimSpace(input))]; ok {
		return Result{Value: full, Original: input, Confidence: 1.0, Changed: true}
	}
	return normalize(input, Functions)
}

// NormalizeJobTitle maps a value onto the canonical title vocabulary
func NormalizeJobTitle(input string) Result {
	return normalize(input, Titles)
}

func normalize(input string, vocab Vocabulary) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{Value: input}
	}

	match, similarity, ok := vocab.BestMatch(trimmed)
	if !ok {
		return Result{Value: input}
	}
	if similarity > 0.95 && strings.EqualFold(trimmed, match) {
		return Result{Value: match, Confidence: 1.0}
	}
	return Result{
		Value:      match,
		Original:   input,
		Confidence: round2(similarity),
		Changed:    trimmed != match,
	}
}

// SuggestDomainCorrection proposes a fix for a mistyped common email domain.
// The local part is never altered. ok is false when no correction applies.
func SuggestDomainCorrection(email string) (DomainSuggestion, bool) {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) < 2 || parts[1] == "" {
		return DomainSuggestion{}, false
	}
	local, domain := parts[0], parts[1]

	best, bestScore := "", -1.0
	for _, candidate := range EmailDomains {
		if s := Similarity(domain, candidate); s > bestScore {
			best, bestScore = candidate, s
		}
	}
	if bestScore <= MatchThreshold || domain == best {
		return DomainSuggestion{}, false
	}
	return DomainSuggestion{
		Email:      fmt.Sprintf("%s@%s", local, best),
		Original:   email,
		Confidence: round2(bestScore),
	}, true
}
