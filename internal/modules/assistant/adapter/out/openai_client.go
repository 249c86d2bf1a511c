package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"moonlight/internal/modules/assistant/domain"
	assistantout "moonlight/internal/modules/assistant/port/out"
)

const completionTemperature = 0.7

// OpenAIClient speaks the OpenAI-compatible chat completion protocol,
// which local servers such as Ollama and LM Studio also expose.
type OpenAIClient struct {
	http *http.Client
}

func NewOpenAIClient(httpClient *http.Client) assistantout.ChatClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIClient{http: httpClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatPayload struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req assistantout.CompletionRequest) ([]byte, error) {
	payload := chatPayload{
		Model:       req.Endpoint.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: completionTemperature,
	}
	if req.StrictJSON {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal completion payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL(req.Endpoint.BaseURL, "/chat/completions"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Endpoint.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Endpoint.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RequestError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

func (c *OpenAIClient) ListModels(ctx context.Context, endpoint assistantout.Endpoint) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL(endpoint.BaseURL, "/models"), nil)
	if err != nil {
		return fmt.Errorf("build models request: %w", err)
	}
	if endpoint.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+endpoint.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("models request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &domain.RequestError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}

func endpointURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
