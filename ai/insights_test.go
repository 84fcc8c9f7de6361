package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, model, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

func sampleRequest(score int) InsightRequest {
	return InsightRequest{FileName: "leads.csv", Headers: []string{"name", "email"}, QualityScore: score, IssuesCount: 4, Duplicates: 1}
}

func TestHeuristicInsightsRiskLevels(t *testing.T) {
	assert.Equal(t, "high", HeuristicInsights(sampleRequest(69)).RiskLevel)
	assert.Equal(t, "medium", HeuristicInsights(sampleRequest(70)).RiskLevel)
	assert.Equal(t, "medium", HeuristicInsights(sampleRequest(89)).RiskLevel)
	assert.Equal(t, "low", HeuristicInsights(sampleRequest(90)).RiskLevel)
	assert.Equal(t, "heuristic", HeuristicInsights(sampleRequest(90)).Source)
}

func TestGenerateParsesModelReply(t *testing.T) {
	client := new(mockLLM)
	reply := "Sure!\n```json\n{\"businessImpact\":\"Bad emails hurt outreach\",\"recommendations\":[\"Fix emails\",\"\"],\"riskLevel\":\"HIGH\",\"roi\":\"2x\"}\n```"
	client.On("ChatCompletion", mock.Anything, "gpt-test", mock.AnythingOfType("string"), 1000).Return(reply, nil)

	got := NewInsightGenerator(client, "gpt-test", time.Second).Generate(context.Background(), sampleRequest(55))

	assert.Equal(t, "ai", got.Source)
	assert.Equal(t, "Bad emails hurt outreach", got.BusinessImpact)
	assert.Equal(t, []string{"Fix emails"}, got.Recommendations)
	assert.Equal(t, "high", got.RiskLevel)
	assert.Equal(t, "2x", got.ROI)
	client.AssertExpectations(t)
}

func TestGenerateFallsBackOnFailure(t *testing.T) {
	client := new(mockLLM)
	client.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("down"))

	got := NewInsightGenerator(client, "m", time.Second).Generate(context.Background(), sampleRequest(95))
	assert.Equal(t, "heuristic", got.Source)
	assert.Equal(t, "low", got.RiskLevel)

	malformed := new(mockLLM)
	malformed.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(`{"roi":"?"}`, nil)
	got = NewInsightGenerator(malformed, "m", time.Second).Generate(context.Background(), sampleRequest(95))
	assert.Equal(t, "heuristic", got.Source)
}

func TestGenerateWithoutClient(t *testing.T) {
	got := NewInsightGenerator(nil, "", time.Second).Generate(context.Background(), sampleRequest(50))
	assert.Equal(t, "heuristic", got.Source)
}

func TestExtractJSONObject(t *testing.T) {
	obj, ok := ExtractJSONObject(`noise {"a": {"b": 1}} trailing`)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, obj)

	_, ok = ExtractJSONObject("no json here")
	assert.False(t, ok)
	_, ok = ExtractJSONObject("{broken")
	assert.False(t, ok)
}
