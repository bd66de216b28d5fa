package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/llms"
	"github.com/gistloop/gistloop/pkg/tokens"
)

// Prompt describes one agent: its identity, default configuration and
// system prompt. The runner resolves the final configuration at call time.
type Prompt struct {
	// Name identifies the agent in configuration overrides and logs.
	Name string

	// Defaults is the agent's configuration template.
	Defaults config.AgentConfig

	// System is the agent's system prompt.
	System string
}

// Runner executes agents against their resolved LLM backends.
type Runner struct {
	LLMs     *config.LLMsConfig
	Resolver *Resolver

	// Overrides holds per-agent configuration overrides keyed by agent name.
	Overrides map[string]config.AgentConfig
}

// NewRunner builds a runner from the application configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		LLMs: &cfg.LLMs,
		Resolver: &Resolver{
			Providers: &cfg.ModelProviders,
			Aliases:   cfg.AliasResolver(),
		},
		Overrides: cfg.Agents,
	}
}

// ResolveConfig returns the finalized configuration for the named agent.
func (r *Runner) ResolveConfig(p *Prompt) (config.AgentConfig, error) {
	var override *config.AgentConfig
	if o, ok := r.Overrides[p.Name]; ok {
		override = &o
	}
	return r.Resolver.Resolve(p.Name, p.Defaults, override)
}

// Run executes the agent with the given input messages and decodes the
// structured response into T. A well-formed but empty model response yields
// (nil, usage, nil); the caller decides how to handle the missing result.
func Run[T any](ctx context.Context, r *Runner, p *Prompt, messages []llms.Message) (*T, *llms.Usage, error) {
	cfg, err := r.ResolveConfig(p)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve config for agent %s: %w", p.Name, err)
	}

	if cfg.MaxInputTokens > 0 {
		counter, err := tokens.NewCounter(cfg.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("agent %s: %w", p.Name, err)
		}
		total := counter.Count(p.System)
		for _, m := range messages {
			total += counter.Count(m.Content)
		}
		if total > cfg.MaxInputTokens {
			return nil, nil, &ContextTooLargeError{Agent: p.Name, Tokens: total, Limit: cfg.MaxInputTokens}
		}
	}

	client, err := llms.NewClient(ctx, &cfg, r.LLMs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client for agent %s: %w", p.Name, err)
	}
	defer client.Close()

	req := &llms.Request{
		System:      p.System,
		Messages:    messages,
		Structured:  true,
		Temperature: cfg.Settings.Temperature,
		TopP:        cfg.Settings.TopP,
		MaxTokens:   cfg.Settings.MaxTokens,
	}

	slog.Debug("Running agent", "agent", p.Name, "model", cfg.Model, "messages", len(messages))

	text, usage, err := client.Generate(ctx, req)
	if err != nil {
		return nil, usage, fmt.Errorf("agent %s: %w", p.Name, err)
	}

	cleaned := stripCodeFence(text)
	if strings.TrimSpace(cleaned) == "" {
		slog.Warn("Agent returned an empty response", "agent", p.Name, "model", cfg.Model)
		return nil, usage, nil
	}

	var out T
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, usage, fmt.Errorf("agent %s: failed to decode response: %w", p.Name, err)
	}
	return &out, usage, nil
}

// stripCodeFence removes a surrounding markdown code fence. Some models wrap
// JSON output in ```json fences even when asked for a bare object.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
