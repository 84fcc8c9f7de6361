package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// OllamaClient talks to a local Ollama server in JSON mode
type OllamaClient struct {
	BaseURL string
	Model   string

	http *http.Client
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format"`
	Options map[string]int `json:"options,omitempty"`
}

// NewOllamaClient creates a client for baseURL (e.g. http://localhost:11434)
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "tinyllama"
	}
	return &OllamaClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// IsAvailable reports whether the server is up and has the configured model pulled
func (c *OllamaClient) IsAvailable(ctx context.Context) bool {
	payload, err := getJSON(ctx, c.http, "ollama", c.BaseURL+"/api/tags")
	if err != nil {
		return false
	}
	for _, name := range gjson.GetBytes(payload, "models.#.name").Array() {
		if strings.Contains(name.String(), c.Model) {
			return true
		}
	}
	return false
}

// ChatCompletion implements ports.LLMClient. An empty model uses the client's model;
// maxTokens is passed as num_predict.
func (c *OllamaClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	if !c.IsAvailable(ctx) {
		return "", fmt.Errorf("ollama model %s not available", c.Model)
	}
	if model == "" {
		model = c.Model
	}

	req := generateRequest{Model: model, Prompt: prompt, Format: "json"}
	if maxTokens > 0 {
		req.Options = map[string]int{"num_predict": maxTokens}
	}

	payload, err := postJSON(ctx, c.http, "ollama", c.BaseURL+"/api/generate", nil, req)
	if err != nil {
		return "", err
	}

	out := gjson.GetBytes(payload, "response")
	if !out.Exists() {
		return "", fmt.Errorf("ollama response missing response field")
	}
	return out.String(), nil
}
