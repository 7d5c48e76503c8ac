// Package llm talks to an OpenAI-compatible chat completion API, used to
// rewrite article titles.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
)

const (
	defaultTimeout  = 60 * time.Second
	maxResponseSize = 1 << 20
)

var (
	// ErrAPIError indicates a non-2xx response from the completion API.
	ErrAPIError = errors.New("llm API error")

	// ErrEmptyResponse indicates a completion with no choices or content.
	ErrEmptyResponse = errors.New("empty completion response")
)

// Client requests chat completions.
type Client interface {
	ChatCompletion(ctx context.Context, system, user string) (string, error)
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	log        *logger.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates a client from the LLM config.
func NewClient(cfg config.LLMConfig, log *logger.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletion sends a system and user message and returns the first
// choice's content.
func (c *HTTPClient) ChatCompletion(ctx context.Context, system, user string) (string, error) {
	reqBody := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil && completion.Error.Message != "" {
			return "", fmt.Errorf("%w: %d: %s", ErrAPIError, resp.StatusCode, completion.Error.Message)
		}

		return "", fmt.Errorf("%w: %d", ErrAPIError, resp.StatusCode)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return completion.Choices[0].Message.Content, nil
}
