package config

import "fmt"

// ClientKind identifies the LLM client used to execute a model call.
type ClientKind string

const (
	ClientOpenAI  ClientKind = "openai"
	ClientGemini  ClientKind = "gemini"
	ClientLiteLLM ClientKind = "litellm"
)

// APIMode selects between the chat-completions and responses API shapes.
type APIMode string

const (
	APIModeChat     APIMode = "chat"
	APIModeResponse APIMode = "response"
)

// ModelSettings carries generation parameters forwarded to the provider.
type ModelSettings struct {
	Temperature *float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	TopP        *float64 `yaml:"top_p,omitempty" json:"top_p,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
	ToolChoice  string   `yaml:"tool_choice,omitempty" json:"tool_choice,omitempty"`
}

// AgentConfig is the full configuration record for one agent.
// A finalized record is produced by merging a default template with overrides;
// the template itself is never mutated.
type AgentConfig struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Model identifier, optionally provider-prefixed (e.g. "gemini/gemini-pro").
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	Client  ClientKind `yaml:"client,omitempty" json:"client,omitempty"`
	APIMode APIMode    `yaml:"api_mode,omitempty" json:"api_mode,omitempty"`

	Settings ModelSettings `yaml:"model_settings,omitempty" json:"model_settings,omitempty"`

	// MaxInputTokens caps the estimated input size; 0 disables the check.
	MaxInputTokens int `yaml:"max_input_tokens,omitempty" json:"max_input_tokens,omitempty"`

	APIKey  string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

// Validate checks that a finalized agent record is usable.
func (c *AgentConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("agent %q: model is required", c.Name)
	}
	switch c.Client {
	case ClientOpenAI, ClientGemini, ClientLiteLLM:
	default:
		return fmt.Errorf("agent %q: invalid client %q (valid: openai, gemini, litellm)", c.Name, c.Client)
	}
	switch c.APIMode {
	case APIModeChat, APIModeResponse:
	default:
		return fmt.Errorf("agent %q: invalid api_mode %q (valid: chat, response)", c.Name, c.APIMode)
	}
	if c.MaxInputTokens < 0 {
		return fmt.Errorf("agent %q: max_input_tokens must not be negative", c.Name)
	}
	return nil
}

// ProviderSettings are the provider-dependent fields of an agent record.
type ProviderSettings struct {
	Client  ClientKind `yaml:"client,omitempty" json:"client,omitempty"`
	APIMode APIMode    `yaml:"api_mode,omitempty" json:"api_mode,omitempty"`
}

// ProviderMapping maps a model-name prefix to provider settings.
// Mappings are scanned in declaration order; the first match wins.
type ProviderMapping struct {
	Prefix  string     `yaml:"prefix" json:"prefix"`
	Client  ClientKind `yaml:"client" json:"client"`
	APIMode APIMode    `yaml:"api_mode" json:"api_mode"`
}

// ModelProvidersConfig is the prefix lookup table for provider resolution.
type ModelProvidersConfig struct {
	Default  ProviderSettings  `yaml:"default,omitempty" json:"default,omitempty"`
	Mappings []ProviderMapping `yaml:"mappings,omitempty" json:"mappings,omitempty"`
}

// SetDefaults applies default provider settings.
func (c *ModelProvidersConfig) SetDefaults() {
	if c.Default.Client == "" {
		c.Default.Client = ClientLiteLLM
	}
	if c.Default.APIMode == "" {
		c.Default.APIMode = APIModeChat
	}
}

// Validate checks the mapping table.
func (c *ModelProvidersConfig) Validate() error {
	for i, m := range c.Mappings {
		if m.Prefix == "" {
			return fmt.Errorf("model_providers.mappings[%d]: prefix is required", i)
		}
		switch m.Client {
		case ClientOpenAI, ClientGemini, ClientLiteLLM:
		default:
			return fmt.Errorf("model_providers.mappings[%d]: invalid client %q", i, m.Client)
		}
		switch m.APIMode {
		case APIModeChat, APIModeResponse:
		default:
			return fmt.Errorf("model_providers.mappings[%d]: invalid api_mode %q", i, m.APIMode)
		}
	}
	return nil
}

// ModelInfo is a per-agent runtime override. Empty fields are "unset" and do
// not participate in merging.
type ModelInfo struct {
	Model          string        `yaml:"model,omitempty" json:"model,omitempty"`
	Client         ClientKind    `yaml:"client,omitempty" json:"client,omitempty"`
	APIMode        APIMode       `yaml:"api_mode,omitempty" json:"api_mode,omitempty"`
	Settings       ModelSettings `yaml:"model_settings,omitempty" json:"model_settings,omitempty"`
	MaxInputTokens int           `yaml:"max_input_tokens,omitempty" json:"max_input_tokens,omitempty"`
	APIKey         string        `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL        string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

// DynamicAgentConfig carries runtime configuration overrides for a single
// workflow run. It never mutates shared state; merges operate on copies.
type DynamicAgentConfig struct {
	// Model applies to every agent unless overridden per agent below.
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	// Aliases are merged over the global alias table for this run only.
	Aliases map[string]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	// Agents holds per-agent overrides keyed by agent name.
	Agents map[string]ModelInfo `yaml:"agents,omitempty" json:"agents,omitempty"`
}
