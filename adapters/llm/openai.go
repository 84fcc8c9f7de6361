package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultMaxTokens     = 1024
	consultantPersona    = "You are DataSentry AI, an expert data quality consultant. Answer with the JSON the user asks for and nothing else."
)

// Config holds settings for the OpenAI client
type Config struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

// OpenAIClient implements ports.LLMClient over the chat completions API
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	temperature float64
	http        *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// NewOpenAIClient creates an OpenAI chat completions client
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &OpenAIClient{
		apiKey:      config.APIKey,
		baseURL:     baseURL,
		temperature: config.Temperature,
		http:        &http.Client{Timeout: config.Timeout},
	}, nil
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(model) == "" {
		return "", fmt.Errorf("openai: missing model")
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: consultantPersona},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	}

	payload, err := postJSON(ctx, c.http, "openai", c.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey}, req)
	if err != nil {
		return "", err
	}

	content := gjson.GetBytes(payload, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("openai response missing choices")
	}
	return content.String(), nil
}
