package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "datasentry/internal/errors"
)

// postJSON sends body as JSON and returns the raw response. Transport failures
// and non-2xx answers are EXTERNAL_SERVICE_ERROR carrying the provider name,
// status and body.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body interface{}) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(client, provider, req)
}

func getJSON(ctx context.Context, client *http.Client, provider, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", provider, err)
	}
	return do(client, provider, req)
}

func do(client *http.Client, provider string, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.WithCode(err, apperrors.CodeExternalService, provider+" request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.WithCode(fmt.Errorf("http %d: %s", resp.StatusCode, string(payload)),
			apperrors.CodeExternalService, provider+" request failed")
	}
	return payload, nil
}

const maxResponseBytes = 4 << 20
