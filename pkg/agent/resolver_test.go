package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gistloop/gistloop/pkg/aliases"
	"github.com/gistloop/gistloop/pkg/config"
)

func testProviders() *config.ModelProvidersConfig {
	p := &config.ModelProvidersConfig{
		Mappings: []config.ProviderMapping{
			{Prefix: "gemini/gemini-2", Client: config.ClientGemini, APIMode: config.APIModeChat},
			{Prefix: "gemini/", Client: config.ClientLiteLLM, APIMode: config.APIModeChat},
			{Prefix: "openai/", Client: config.ClientOpenAI, APIMode: config.APIModeResponse},
		},
	}
	p.SetDefaults()
	return p
}

func testResolver(aliasTable map[string]string) *Resolver {
	return &Resolver{
		Providers: testProviders(),
		Aliases:   aliases.NewResolver(aliasTable),
	}
}

func TestResolvePrefixFirstMatchWins(t *testing.T) {
	r := testResolver(nil)
	defaults := config.AgentConfig{Model: "gemini/gemini-2.5-pro"}

	// Both gemini prefixes match; the more specific one is declared first.
	resolved, err := r.Resolve("test", defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, config.ClientGemini, resolved.Client)
	assert.Equal(t, config.APIModeChat, resolved.APIMode)
}

func TestResolveFallsBackToTableDefault(t *testing.T) {
	r := testResolver(nil)
	defaults := config.AgentConfig{Model: "claude-sonnet"}

	resolved, err := r.Resolve("test", defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, config.ClientLiteLLM, resolved.Client)
	assert.Equal(t, config.APIModeChat, resolved.APIMode)
}

func TestResolveExplicitOverrideWinsOverPrefix(t *testing.T) {
	r := testResolver(nil)
	defaults := config.AgentConfig{Model: "openai/gpt-4o"}
	override := &config.AgentConfig{Client: config.ClientLiteLLM, APIMode: config.APIModeChat}

	resolved, err := r.Resolve("test", defaults, override)
	require.NoError(t, err)
	assert.Equal(t, config.ClientLiteLLM, resolved.Client)
	assert.Equal(t, config.APIModeChat, resolved.APIMode)
}

func TestResolveAliasBeforePrefixMatch(t *testing.T) {
	r := testResolver(map[string]string{"fast": "openai/gpt-4o-mini"})
	defaults := config.AgentConfig{Model: "fast"}

	resolved, err := r.Resolve("test", defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", resolved.Model)
	assert.Equal(t, config.ClientOpenAI, resolved.Client)
	assert.Equal(t, config.APIModeResponse, resolved.APIMode)
}

func TestResolveOverrideModelIsAliasResolved(t *testing.T) {
	r := testResolver(map[string]string{"best": "gemini/gemini-2.5-pro"})
	defaults := config.AgentConfig{Model: "openai/gpt-4o"}
	override := &config.AgentConfig{Model: "best"}

	resolved, err := r.Resolve("test", defaults, override)
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-2.5-pro", resolved.Model)
	assert.Equal(t, config.ClientGemini, resolved.Client)
}

func TestResolveOverrideFieldsAppliedVerbatim(t *testing.T) {
	r := testResolver(nil)
	temp := 0.2
	defaults := config.AgentConfig{Model: "gemini/gemini-pro", MaxInputTokens: 1000}
	override := &config.AgentConfig{
		Settings:       config.ModelSettings{Temperature: &temp, MaxTokens: 512},
		MaxInputTokens: 9000,
		APIKey:         "override-key",
		BaseURL:        "http://proxy.local",
	}

	resolved, err := r.Resolve("test", defaults, override)
	require.NoError(t, err)
	require.NotNil(t, resolved.Settings.Temperature)
	assert.Equal(t, 0.2, *resolved.Settings.Temperature)
	assert.Equal(t, 512, resolved.Settings.MaxTokens)
	assert.Equal(t, 9000, resolved.MaxInputTokens)
	assert.Equal(t, "override-key", resolved.APIKey)
	assert.Equal(t, "http://proxy.local", resolved.BaseURL)
}

func TestResolveNeverMutatesTemplate(t *testing.T) {
	r := testResolver(map[string]string{"fast": "openai/gpt-4o-mini"})
	temp := 0.7
	defaults := config.AgentConfig{
		Model:    "fast",
		Settings: config.ModelSettings{Temperature: &temp},
	}
	override := &config.AgentConfig{Model: "gemini/gemini-pro"}
	newTemp := 0.0

	resolved, err := r.Resolve("test", defaults, override)
	require.NoError(t, err)

	*resolved.Settings.Temperature = newTemp
	assert.Equal(t, 0.7, *defaults.Settings.Temperature)
	assert.Equal(t, "fast", defaults.Model)
	assert.Equal(t, config.ClientKind(""), defaults.Client)
}

func TestResolveValidationFailure(t *testing.T) {
	r := testResolver(nil)

	_, err := r.Resolve("test", config.AgentConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestResolveFillsNameFromKey(t *testing.T) {
	r := testResolver(nil)
	resolved, err := r.Resolve("SummaryAgent", config.AgentConfig{Model: "gemini/gemini-pro"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SummaryAgent", resolved.Name)
}
