// Package llms implements the LLM clients used to execute agent calls:
// openai (chat and responses API modes), gemini, and litellm (an
// OpenAI-compatible proxy).
package llms

import (
	"context"
	"strings"
)

// Message is a single prompt message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token consumption for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is a provider-independent generation request.
type Request struct {
	System   string
	Messages []Message

	// Structured asks the provider for a JSON object response.
	Structured bool

	Temperature *float64
	TopP        *float64
	MaxTokens   int
}

// Client executes generation requests against one LLM backend.
type Client interface {
	Generate(ctx context.Context, req *Request) (string, *Usage, error)
	Model() string
	Close() error
}

// StripProviderPrefix removes a "provider/" prefix from a model name when the
// prefix names the client itself (litellm-style routing prefixes).
func StripProviderPrefix(model, provider string) string {
	if rest, ok := strings.CutPrefix(model, provider+"/"); ok {
		return rest
	}
	return model
}
