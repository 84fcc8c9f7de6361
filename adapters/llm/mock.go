package llm

import (
	"context"
	"sync"
	"time"
)

// MockLLMClient is a scripted ports.LLMClient for tests. It records every
// prompt it receives.
type MockLLMClient struct {
	Response string
	Error    error
	Delay    time.Duration

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLMClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}

// Calls returns how many prompts the mock received
func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
