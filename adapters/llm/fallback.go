package llm

import (
	"context"
	"fmt"

	"datasentry/ports"
)

// FallbackClient tries each client in order and returns the first success
type FallbackClient struct {
	clients []ports.LLMClient
	models  []string
}

// NewFallbackClient creates an empty chain
func NewFallbackClient() *FallbackClient {
	return &FallbackClient{}
}

// Add appends a client to the chain. Nil clients are skipped.
func (f *FallbackClient) Add(client ports.LLMClient, model string) *FallbackClient {
	if client != nil {
		f.clients = append(f.clients, client)
		f.models = append(f.models, model)
	}
	return f
}

// Len returns the number of chained clients
func (f *FallbackClient) Len() int {
	return len(f.clients)
}

// ChatCompletion ignores the model argument; each client uses the model it was added with
func (f *FallbackClient) ChatCompletion(ctx context.Context, _ string, prompt string, maxTokens int) (string, error) {
	if len(f.clients) == 0 {
		return "", fmt.Errorf("no LLM client configured")
	}
	var lastErr error
	for i, c := range f.clients {
		out, err := c.ChatCompletion(ctx, f.models[i], prompt, maxTokens)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("all LLM clients failed: %w", lastErr)
}
