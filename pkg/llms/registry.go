package llms

import (
	"context"
	"fmt"

	"github.com/gistloop/gistloop/pkg/config"
)

// NewClient builds a Client from a finalized agent config and the credential
// set. The agent's client kind selects the backend; per-agent api_key and
// base_url override the credential when set.
func NewClient(ctx context.Context, cfg *config.AgentConfig, creds *config.LLMsConfig) (Client, error) {
	cred := creds.Credential(string(cfg.Client))
	if cred == nil {
		cred = &config.LLMCredential{Name: string(cfg.Client)}
	}
	// Per-agent overrides win over the credential set.
	merged := *cred
	if cfg.APIKey != "" {
		merged.APIKey = cfg.APIKey
	}
	if cfg.BaseURL != "" {
		merged.BaseURL = cfg.BaseURL
	}

	switch cfg.Client {
	case config.ClientOpenAI:
		model := StripProviderPrefix(cfg.Model, "openai")
		return NewOpenAIClient(model, cfg.APIMode, &merged)
	case config.ClientGemini:
		return NewGeminiClient(ctx, cfg.Model, &merged)
	case config.ClientLiteLLM:
		// The litellm proxy speaks the OpenAI chat wire format and routes
		// on the provider-prefixed model name, which is passed through.
		return NewOpenAIClient(cfg.Model, config.APIModeChat, &merged)
	default:
		return nil, fmt.Errorf("unsupported client %q (supported: openai, gemini, litellm)", cfg.Client)
	}
}
