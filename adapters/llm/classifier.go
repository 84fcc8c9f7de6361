package llm

import (
	"context"
	"fmt"
	"strings"

	"datasentry/ai"
	"datasentry/ports"

	"github.com/tidwall/gjson"
)

// JobFunctionClassifier implements ports.JobFunctionClassifier over any LLM client
type JobFunctionClassifier struct {
	client ports.LLMClient
	model  string
}

// NewJobFunctionClassifier creates a classifier
func NewJobFunctionClassifier(client ports.LLMClient, model string) *JobFunctionClassifier {
	return &JobFunctionClassifier{client: client, model: model}
}

// ClassifyJobTitle asks the model for {"function","confidence","reason"}.
// A reply without a function is a malformed response.
func (c *JobFunctionClassifier) ClassifyJobTitle(ctx context.Context, title string) (*ports.JobFunctionSuggestion, error) {
	content, err := c.client.ChatCompletion(ctx, c.model, ai.JobFunctionPrompt(title), 200)
	if err != nil {
		return nil, err
	}
	obj, ok := ai.ExtractJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("job function response is not JSON: %q", content)
	}

	parsed := gjson.Parse(obj)
	function := strings.TrimSpace(parsed.Get("function").String())
	if function == "" {
		return nil, fmt.Errorf("job function response missing function")
	}

	confidence := parsed.Get("confidence").Float()
	if confidence < 0 || confidence > 1 {
		confidence = 0
	}

	return &ports.JobFunctionSuggestion{
		Function:   function,
		Confidence: confidence,
		Reason:     parsed.Get("reason").String(),
	}, nil
}

// IndustryNormalizer implements ports.IndustryNormalizer over any LLM client
type IndustryNormalizer struct {
	client ports.LLMClient
	model  string
}

// NewIndustryNormalizer creates a normalizer
func NewIndustryNormalizer(client ports.LLMClient, model string) *IndustryNormalizer {
	return &IndustryNormalizer{client: client, model: model}
}

// NormalizeIndustry asks the model for {"normalized"}
func (n *IndustryNormalizer) NormalizeIndustry(ctx context.Context, value string) (string, error) {
	content, err := n.client.ChatCompletion(ctx, n.model, ai.IndustryPrompt(value), 100)
	if err != nil {
		return "", err
	}
	obj, ok := ai.ExtractJSONObject(content)
	if !ok {
		return "", fmt.Errorf("industry response is not JSON: %q", content)
	}
	normalized := strings.TrimSpace(gjson.Get(obj, "normalized").String())
	if normalized == "" {
		return "", fmt.Errorf("industry response missing normalized value")
	}
	return normalized, nil
}
