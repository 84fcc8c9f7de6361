package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("Technology", "technology"))
	assert.InDelta(t, 0.9, Similarity("tecnology", "Technology"), 1e-9)
	assert.Equal(t, 0.0, Similarity("IT", "HR"))
}

func TestBestMatchTieBreaksOnDeclarationOrder(t *testing.T) {
	vocab := Vocabulary{"abcd", "abce"}
	match, sim, ok := vocab.BestMatch("abcx")
	require.True(t, ok)
	assert.Equal(t, "abcd", match)
	assert.InDelta(t, 0.75, sim, 1e-9)

	_, _, ok = vocab.BestMatch("zzzz")
	assert.False(t, ok)
}

func TestNormalizeIndustryCanonical(t *testing.T) {
	res := NormalizeIndustry("technology")
	assert.Equal(t, "Technology", res.Value)
	assert.Equal(t, 1.0, res.Confidence)
	assert.False(t, res.Changed)
}

func TestNormalizeIndustryTypo(t *testing.T) {
	res := NormalizeIndustry("tecnology")
	assert.Equal(t, "Technology", res.Value)
	assert.True(t, res.Changed)
	assert.Greater(t, res.Confidence, 0.0)
	assert.Less(t, res.Confidence, 1.0)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Equal(t, "tecnology", res.Original)
}

func TestNormalizeIndustryNoMatch(t *testing.T) {
	res := NormalizeIndustry("Underwater Basket Weaving")
	assert.Equal(t, "Underwater Basket Weaving", res.Value)
	assert.Equal(t, 0.0, res.Confidence)
	assert.False(t, res.Changed)

	empty := NormalizeIndustry("")
	assert.Equal(t, Result{}, empty)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Equal(t, NormalizeIndustry("Helthcare"), NormalizeIndustry("Helthcare"))
	}
}

func TestNormalizeFunctionAbbreviations(t *testing.T) {
	res := NormalizeFunction("ENG")
	assert.Equal(t, Result{Value: "Engineering", Original: "ENG", Confidence: 1.0, Changed: true}, res)

	res = NormalizeFunction("info tech")
	assert.Equal(t, "IT", res.Value)

	res = NormalizeFunction("Markting")
	assert.Equal(t, "Marketing", res.Value)
	assert.True(t, res.Changed)
}

func TestNormalizeJobTitle(t *testing.T) {
	res := NormalizeJobTitle("Sofware Engineer")
	assert.Equal(t, "Software Engineer", res.Value)
	assert.True(t, res.Changed)

	res = NormalizeJobTitle("cto")
	assert.Equal(t, "CTO", res.Value)
	assert.False(t, res.Changed)
}

func TestSuggestDomainCorrection(t *testing.T) {
	s, ok := SuggestDomainCorrection("jane@gmial.com")
	require.True(t, ok)
	assert.Equal(t, "jane@gmail.com", s.Email)
	assert.Equal(t, "jane@gmial.com", s.Original)
	assert.Greater(t, s.Confidence, 0.6)
	assert.LessOrEqual(t, s.Confidence, 1.0)

	s, ok = SuggestDomainCorrection("J.Doe+x@yaho.com")
	require.True(t, ok)
	assert.Equal(t, "J.Doe+x@yahoo.com", s.Email)
}

func TestSuggestDomainCorrectionSkips(t *testing.T) {
	for _, email := range []string{"jane@gmail.com", "jane@acme-industries.io", "no-at-sign", "trailing@", ""} {
		_, ok := SuggestDomainCorrection(email)
		assert.False(t, ok, "email %q", email)
	}
}
