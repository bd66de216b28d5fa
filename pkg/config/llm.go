package config

import (
	"fmt"
	"os"
)

// LLMCredential holds credentials and endpoint for one LLM backend.
type LLMCredential struct {
	Name           string `yaml:"name,omitempty" json:"name,omitempty"`
	APIKey         string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	ProjectID      string `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	OrganizationID string `yaml:"organization_id,omitempty" json:"organization_id,omitempty"`
}

// LLMsConfig groups credentials per client kind, plus any extra named backends.
type LLMsConfig struct {
	OpenAI  *LLMCredential `yaml:"openai,omitempty" json:"openai,omitempty"`
	Gemini  *LLMCredential `yaml:"gemini,omitempty" json:"gemini,omitempty"`
	LiteLLM *LLMCredential `yaml:"litellm,omitempty" json:"litellm,omitempty"`

	// Extra backends addressable by name through Credential().
	Extra map[string]LLMCredential `yaml:"llms,omitempty" json:"llms,omitempty"`
}

// SetDefaults fills credentials from conventional environment variables when
// the config file leaves them empty.
func (c *LLMsConfig) SetDefaults() {
	if c.OpenAI == nil {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.OpenAI = &LLMCredential{Name: "openai", APIKey: key}
		}
	}
	if c.Gemini == nil {
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			key = os.Getenv("GOOGLE_API_KEY")
		}
		if key != "" {
			c.Gemini = &LLMCredential{Name: "gemini", APIKey: key}
		}
	}
	if c.LiteLLM == nil {
		if key := os.Getenv("LITELLM_PROXY_API_KEY"); key != "" {
			c.LiteLLM = &LLMCredential{
				Name:    "litellm",
				APIKey:  key,
				BaseURL: os.Getenv("LITELLM_PROXY_API_BASE"),
			}
		}
	}
}

// Validate checks client-specific requirements.
func (c *LLMsConfig) Validate() error {
	if c.LiteLLM != nil && c.LiteLLM.BaseURL == "" {
		return fmt.Errorf("llms.litellm: base_url is required for the litellm proxy")
	}
	return nil
}

// Credential returns the credential for a client kind, or an extra backend by
// name. Returns nil when nothing is configured.
func (c *LLMsConfig) Credential(name string) *LLMCredential {
	switch ClientKind(name) {
	case ClientOpenAI:
		if c.OpenAI != nil {
			return c.OpenAI
		}
	case ClientGemini:
		if c.Gemini != nil {
			return c.Gemini
		}
	case ClientLiteLLM:
		if c.LiteLLM != nil {
			return c.LiteLLM
		}
	}
	if cred, ok := c.Extra[name]; ok {
		return &cred
	}
	return nil
}
