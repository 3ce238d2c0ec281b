package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// ErrNoContent means the upstream reply carried no text block to return.
var ErrNoContent = errors.New("upstream response contains no text content")

// APIError is a non-2xx reply from the upstream API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Sprintf("upstream authentication failed: %s", e.Message)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("upstream rate limit exceeded: %s", e.Message)
	case http.StatusBadRequest:
		return fmt.Sprintf("upstream rejected request: %s", e.Message)
	default:
		return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
	}
}

// AnthropicClient implements Generator against the Anthropic messages API.
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewAnthropicClientWithBaseURL points the client at a non-default endpoint.
// Used by tests to target an httptest server.
func NewAnthropicClientWithBaseURL(apiKey, baseURL string) *AnthropicClient {
	c := NewAnthropicClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type messageRequest struct {
	Model       string           `json:"model"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	System      string           `json:"system,omitempty"`
	Messages    []messagePayload `json:"messages"`
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one messages-API request and returns the first text block of
// the reply, trimmed.
func (c *AnthropicClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := messageRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages: []messagePayload{
			{Role: "user", Content: req.UserMessage},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var parsed errorResponse
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Message != "" {
			apiErr.Message = parsed.Error.Message
		}
		return "", apiErr
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", err
	}

	if len(msg.Content) == 0 || msg.Content[0].Type != "text" {
		return "", ErrNoContent
	}

	return strings.TrimSpace(msg.Content[0].Text), nil
}
