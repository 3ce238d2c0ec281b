package ai

import "context"

// Generator produces a single text completion for a prompt. The concrete
// implementation talks to the Anthropic messages API; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest carries one prompt to the upstream model.
type GenerateRequest struct {
	Model       string
	MaxTokens   int
	Temperature float64
	System      string
	UserMessage string
}
