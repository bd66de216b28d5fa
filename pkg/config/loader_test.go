package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gistloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	path := writeConfig(t, `
name: test-service
llms:
  litellm:
    api_key: test-key
    base_url: http://localhost:4000
`)

	cfg, err := LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "test-service", cfg.Name)
	assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
	assert.Equal(t, "default", cfg.Temporal.Namespace)
	require.Len(t, cfg.Temporal.Workers, 1)
	assert.Equal(t, "gistloop-queue", cfg.Temporal.Workers[0].Queue)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Minute, cfg.Server.SyncTimeout)
	assert.Equal(t, ClientLiteLLM, cfg.ModelProviders.Default.Client)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileEnvExpansion(t *testing.T) {
	t.Setenv("TEST_LITELLM_KEY", "secret-from-env")

	path := writeConfig(t, `
llms:
  litellm:
    api_key: ${TEST_LITELLM_KEY}
    base_url: ${TEST_LITELLM_BASE:-http://localhost:4000}
`)

	cfg, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, cfg.LLMs.LiteLLM)
	assert.Equal(t, "secret-from-env", cfg.LLMs.LiteLLM.APIKey)
	assert.Equal(t, "http://localhost:4000", cfg.LLMs.LiteLLM.BaseURL)
}

func TestLoadFileAgentsAndAliases(t *testing.T) {
	path := writeConfig(t, `
aliases:
  fast: openai/gpt-4o-mini
agents:
  SummaryAgent:
    model: fast
    client: openai
    api_mode: chat
    model_settings:
      temperature: 0.2
      max_tokens: 1024
    max_input_tokens: 100000
`)

	cfg, err := LoadFile(context.Background(), path)
	require.NoError(t, err)

	agent, ok := cfg.Agents["SummaryAgent"]
	require.True(t, ok)
	assert.Equal(t, "SummaryAgent", agent.Name)
	assert.Equal(t, "fast", agent.Model)
	assert.Equal(t, ClientOpenAI, agent.Client)
	require.NotNil(t, agent.Settings.Temperature)
	assert.Equal(t, 0.2, *agent.Settings.Temperature)
	assert.Equal(t, 1024, agent.Settings.MaxTokens)
	assert.Equal(t, 100000, agent.MaxInputTokens)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.Aliases["fast"])
}

func TestLoadFileSyncTimeoutDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  sync_timeout: 90s
`)

	cfg, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Server.SyncTimeout)
}

func TestLoadFileInvalidWorker(t *testing.T) {
	path := writeConfig(t, `
temporal:
  workers:
    - name: broken
`)

	_, err := LoadFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is required")
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExpandEnvString(t *testing.T) {
	t.Setenv("TEST_EXPAND_VAR", "value")

	assert.Equal(t, "value", expandEnvString("${TEST_EXPAND_VAR}"))
	assert.Equal(t, "value", expandEnvString("$TEST_EXPAND_VAR"))
	assert.Equal(t, "fallback", expandEnvString("${TEST_EXPAND_UNSET:-fallback}"))
	assert.Equal(t, "prefix-value-suffix", expandEnvString("prefix-${TEST_EXPAND_VAR}-suffix"))
}

func TestStorageValidation(t *testing.T) {
	path := writeConfig(t, `
storage:
  endpoint: s3.local:9000
`)

	_, err := LoadFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}
