package ports

import "context"

// LLMClient interface for LLM providers
type LLMClient interface {
	ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error)
}

// JobFunctionSuggestion is an AI classification of a job title.
// Confidence is zero when the model did not report one.
type JobFunctionSuggestion struct {
	Function   string  `json:"function"`
	Confidence float64 `json:"confidence,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// JobFunctionClassifier maps a free-text title to a job function. Errors cover
// transport failures and malformed responses alike.
type JobFunctionClassifier interface {
	ClassifyJobTitle(ctx context.Context, title string) (*JobFunctionSuggestion, error)
}

// IndustryNormalizer maps a free-text industry to a standard label
type IndustryNormalizer interface {
	NormalizeIndustry(ctx context.Context, value string) (string, error)
}
