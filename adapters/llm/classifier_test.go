package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFunctionClassifier(t *testing.T) {
	mock := &MockLLMClient{Response: `{"function":"Engineering","confidence":0.7,"reason":"builds software"}`}
	c := NewJobFunctionClassifier(mock, "m")

	got, err := c.ClassifyJobTitle(context.Background(), "Staff Platform Wrangler")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.Function)
	assert.Equal(t, 0.7, got.Confidence)
	assert.Equal(t, "builds software", got.Reason)
	assert.Contains(t, mock.Prompts[0], "Staff Platform Wrangler")
}

func TestJobFunctionClassifierMissingConfidence(t *testing.T) {
	c := NewJobFunctionClassifier(&MockLLMClient{Response: `{"function":"Sales"}`}, "m")
	got, err := c.ClassifyJobTitle(context.Background(), "AE")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Confidence)
}

func TestJobFunctionClassifierMalformed(t *testing.T) {
	for _, reply := range []string{"I think Sales", `{"confidence":0.9}`, `{"function":"  "}`} {
		c := NewJobFunctionClassifier(&MockLLMClient{Response: reply}, "m")
		_, err := c.ClassifyJobTitle(context.Background(), "x")
		assert.Error(t, err, "reply %q", reply)
	}

	c := NewJobFunctionClassifier(&MockLLMClient{Error: assert.AnError}, "m")
	_, err := c.ClassifyJobTitle(context.Background(), "x")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestIndustryNormalizer(t *testing.T) {
	n := NewIndustryNormalizer(&MockLLMClient{Response: `{"normalized":"Information Technology"}`}, "m")
	got, err := n.NormalizeIndustry(context.Background(), "software")
	require.NoError(t, err)
	assert.Equal(t, "Information Technology", got)

	n = NewIndustryNormalizer(&MockLLMClient{Response: `{}`}, "m")
	_, err = n.NormalizeIndustry(context.Background(), "software")
	assert.Error(t, err)
}
