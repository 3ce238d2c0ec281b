package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_Generate_Success(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotVersion = r.Header.Get("Anthropic-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "  {\"ok\": true}  "}]}`))
	}))
	defer server.Close()

	client := NewAnthropicClientWithBaseURL("test-key", server.URL)

	text, err := client.Generate(context.Background(), GenerateRequest{
		Model:       "claude-3-5-sonnet-20240620",
		MaxTokens:   2000,
		Temperature: 0.7,
		System:      "system prompt",
		UserMessage: "user message",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, text, "reply text should be trimmed")
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "claude-3-5-sonnet-20240620", gotBody["model"])
	assert.Equal(t, float64(2000), gotBody["max_tokens"])
	assert.Equal(t, "system prompt", gotBody["system"])

	messages := gotBody["messages"].([]interface{})
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "user message", first["content"])
}

func TestAnthropicClient_Generate_APIErrors(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantInText string
	}{
		{
			name:       "authentication",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`,
			wantInText: "upstream authentication failed",
		},
		{
			name:       "rate limit",
			status:     http.StatusTooManyRequests,
			body:       `{"error": {"type": "rate_limit_error", "message": "rate limited"}}`,
			wantInText: "upstream rate limit exceeded",
		},
		{
			name:       "bad request",
			status:     http.StatusBadRequest,
			body:       `{"error": {"type": "invalid_request_error", "message": "max_tokens required"}}`,
			wantInText: "upstream rejected request",
		},
		{
			name:       "server error with unparseable body",
			status:     http.StatusInternalServerError,
			body:       "<html>oops</html>",
			wantInText: "upstream error (status 500)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewAnthropicClientWithBaseURL("test-key", server.URL)
			_, err := client.Generate(context.Background(), GenerateRequest{UserMessage: "hi"})

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Error(), tc.wantInText)
		})
	}
}

func TestAnthropicClient_Generate_NoTextContent(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty content", `{"content": []}`},
		{"non-text block", `{"content": [{"type": "tool_use"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewAnthropicClientWithBaseURL("test-key", server.URL)
			_, err := client.Generate(context.Background(), GenerateRequest{UserMessage: "hi"})

			assert.ErrorIs(t, err, ErrNoContent)
		})
	}
}
