// Package agent implements agent configuration resolution and the runner
// that executes a configured agent against an LLM backend.
package agent

import (
	"log/slog"
	"strings"

	"github.com/gistloop/gistloop/pkg/aliases"
	"github.com/gistloop/gistloop/pkg/config"
)

// Resolver produces finalized agent configuration records by merging a
// default template, the provider prefix table, and caller overrides.
type Resolver struct {
	Providers *config.ModelProvidersConfig
	Aliases   *aliases.Resolver
}

// findProviderMapping returns the first mapping whose prefix matches the
// model name, in declaration order. Nil when nothing matches.
func findProviderMapping(model string, providers *config.ModelProvidersConfig) *config.ProviderMapping {
	for i := range providers.Mappings {
		if strings.HasPrefix(model, providers.Mappings[i].Prefix) {
			return &providers.Mappings[i]
		}
	}
	return nil
}

// cloneConfig copies an agent record, including pointer-typed settings, so
// the template can never be mutated through a resolved record.
func cloneConfig(c config.AgentConfig) config.AgentConfig {
	out := c
	if c.Settings.Temperature != nil {
		t := *c.Settings.Temperature
		out.Settings.Temperature = &t
	}
	if c.Settings.TopP != nil {
		p := *c.Settings.TopP
		out.Settings.TopP = &p
	}
	return out
}

// Resolve merges the default template with an optional override into a new,
// validated record. Zero-valued override fields are treated as unset.
//
// Precedence for the provider-dependent fields (client, api_mode):
// explicit override, then the first matching prefix mapping, then the
// table's declared default.
func (r *Resolver) Resolve(name string, defaults config.AgentConfig, override *config.AgentConfig) (config.AgentConfig, error) {
	result := cloneConfig(defaults)
	if result.Name == "" {
		result.Name = name
	}

	model := result.Model
	if override != nil && override.Model != "" {
		model = override.Model
	}

	resolved := r.Aliases.Resolve(model)
	if resolved != model {
		slog.Info("Model alias resolved", "agent", name, "from", model, "to", resolved)
	}
	result.Model = resolved

	providers := r.Providers
	if providers == nil {
		providers = &config.ModelProvidersConfig{}
		providers.SetDefaults()
	}

	mapping := findProviderMapping(result.Model, providers)
	if override == nil || override.Client == "" {
		if mapping != nil {
			result.Client = mapping.Client
		} else {
			result.Client = providers.Default.Client
		}
	}
	if override == nil || override.APIMode == "" {
		if mapping != nil {
			result.APIMode = mapping.APIMode
		} else {
			result.APIMode = providers.Default.APIMode
		}
	}

	if override != nil {
		applyOverride(&result, override)
	}

	if err := result.Validate(); err != nil {
		return config.AgentConfig{}, err
	}

	slog.Debug("Resolved agent configuration",
		"agent", name,
		"model", result.Model,
		"client", result.Client,
		"api_mode", result.APIMode,
	)
	return result, nil
}

// applyOverride copies every set override field onto the result verbatim.
func applyOverride(result, override *config.AgentConfig) {
	if override.Client != "" {
		result.Client = override.Client
	}
	if override.APIMode != "" {
		result.APIMode = override.APIMode
	}
	if override.Description != "" {
		result.Description = override.Description
	}
	if override.Settings.Temperature != nil {
		t := *override.Settings.Temperature
		result.Settings.Temperature = &t
	}
	if override.Settings.TopP != nil {
		p := *override.Settings.TopP
		result.Settings.TopP = &p
	}
	if override.Settings.MaxTokens != 0 {
		result.Settings.MaxTokens = override.Settings.MaxTokens
	}
	if override.Settings.ToolChoice != "" {
		result.Settings.ToolChoice = override.Settings.ToolChoice
	}
	if override.MaxInputTokens != 0 {
		result.MaxInputTokens = override.MaxInputTokens
	}
	if override.APIKey != "" {
		result.APIKey = override.APIKey
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
}
