package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gistloop/gistloop/pkg/config"
)

func baseAgents() map[string]config.AgentConfig {
	return map[string]config.AgentConfig{
		"SummaryAgent": {
			Name:   "SummaryAgent",
			Model:  "gemini/gemini-pro",
			Client: config.ClientLiteLLM,
		},
		"SummaryJudge": {
			Name:   "SummaryJudge",
			Model:  "gemini/gemini-pro",
			Client: config.ClientLiteLLM,
		},
	}
}

func TestApplyDynamicConfigNilOverrides(t *testing.T) {
	base := baseAgents()
	agents, aliasTable := ApplyDynamicConfig(base, nil, map[string]string{"fast": "gpt-4o-mini"})

	assert.Equal(t, base, agents)
	assert.Equal(t, map[string]string{"fast": "gpt-4o-mini"}, aliasTable)
}

func TestApplyDynamicConfigGlobalModel(t *testing.T) {
	base := baseAgents()
	dyn := &config.DynamicAgentConfig{Model: "openai/gpt-4o"}

	agents, _ := ApplyDynamicConfig(base, dyn, nil)
	for name, ac := range agents {
		assert.Equal(t, "openai/gpt-4o", ac.Model, "agent %s", name)
	}
	// The base map is untouched.
	assert.Equal(t, "gemini/gemini-pro", base["SummaryAgent"].Model)
}

func TestApplyDynamicConfigExistingAgentModelOnly(t *testing.T) {
	base := baseAgents()
	dyn := &config.DynamicAgentConfig{
		Agents: map[string]config.ModelInfo{
			"SummaryAgent": {Model: "openai/gpt-4o", Client: config.ClientOpenAI, APIKey: "should-not-apply"},
		},
	}

	agents, _ := ApplyDynamicConfig(base, dyn, nil)
	got := agents["SummaryAgent"]
	assert.Equal(t, "openai/gpt-4o", got.Model)
	// Existing agents keep everything but the model.
	assert.Equal(t, config.ClientLiteLLM, got.Client)
	assert.Empty(t, got.APIKey)
	// The other agent is untouched.
	assert.Equal(t, "gemini/gemini-pro", agents["SummaryJudge"].Model)
}

func TestApplyDynamicConfigNewAgentFullRecord(t *testing.T) {
	base := baseAgents()
	dyn := &config.DynamicAgentConfig{
		Agents: map[string]config.ModelInfo{
			"Extractor": {Model: "openai/gpt-4o", Client: config.ClientOpenAI, MaxInputTokens: 5000},
		},
	}

	agents, _ := ApplyDynamicConfig(base, dyn, nil)
	got, ok := agents["Extractor"]
	require.True(t, ok)
	assert.Equal(t, "Extractor", got.Name)
	assert.Equal(t, "openai/gpt-4o", got.Model)
	assert.Equal(t, config.ClientOpenAI, got.Client)
	assert.Equal(t, 5000, got.MaxInputTokens)
}

func TestApplyDynamicConfigPerAgentWinsOverGlobal(t *testing.T) {
	base := baseAgents()
	dyn := &config.DynamicAgentConfig{
		Model: "openai/gpt-4o",
		Agents: map[string]config.ModelInfo{
			"SummaryAgent": {Model: "gemini/gemini-2.5-pro"},
		},
	}

	agents, _ := ApplyDynamicConfig(base, dyn, nil)
	assert.Equal(t, "gemini/gemini-2.5-pro", agents["SummaryAgent"].Model)
	assert.Equal(t, "openai/gpt-4o", agents["SummaryJudge"].Model)
}

func TestApplyDynamicConfigAliasMergeIsRunScoped(t *testing.T) {
	global := map[string]string{"fast": "gpt-4o-mini", "best": "gemini-pro"}
	dyn := &config.DynamicAgentConfig{Aliases: map[string]string{"fast": "claude-haiku"}}

	_, merged := ApplyDynamicConfig(baseAgents(), dyn, global)
	assert.Equal(t, "claude-haiku", merged["fast"])
	assert.Equal(t, "gemini-pro", merged["best"])
	// The global table keeps its binding.
	assert.Equal(t, "gpt-4o-mini", global["fast"])
}
