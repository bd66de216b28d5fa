package workflows

import (
	"context"
	"maps"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/gistloop/gistloop/pkg/agent"
	"github.com/gistloop/gistloop/pkg/aliases"
	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/summarizer"
)

// Activities bundles the activity implementations with their dependencies.
type Activities struct {
	Config *config.Config
}

// NewActivities builds the activity set for a worker.
func NewActivities(cfg *config.Config) *Activities {
	return &Activities{Config: cfg}
}

// OneTypeActivityInput carries the summarization input together with the
// run-scoped configuration resolved by the workflow.
type OneTypeActivityInput struct {
	Input   summarizer.SummaryInput       `json:"input"`
	Agents  map[string]config.AgentConfig `json:"agents,omitempty"`
	Aliases map[string]string             `json:"aliases,omitempty"`
}

// RunSummarizerOneType runs the refinement loop for one summary type.
func (a *Activities) RunSummarizerOneType(ctx context.Context, in OneTypeActivityInput) (*summarizer.InternalSummaryResult, error) {
	stop := heartbeatEvery(ctx, 30*time.Second)
	defer stop()

	runner := a.runnerFor(in.Agents, in.Aliases)
	return summarizer.Run(ctx, runner, &in.Input)
}

// GetAgentConfigs returns the process configuration snapshot the workflows
// merge their dynamic overrides over.
func (a *Activities) GetAgentConfigs(ctx context.Context) (*AgentConfigs, error) {
	out := &AgentConfigs{
		Agents:  make(map[string]config.AgentConfig, len(a.Config.Agents)),
		Aliases: make(map[string]string, len(a.Config.Aliases)),
	}
	maps.Copy(out.Agents, a.Config.Agents)
	maps.Copy(out.Aliases, a.Config.Aliases)
	return out, nil
}

// Echo returns its input. Used to verify worker liveness end to end.
func (a *Activities) Echo(ctx context.Context, msg string) (string, error) {
	return msg, nil
}

// runnerFor builds an agent runner using the run-scoped configuration when
// present, falling back to the process configuration.
func (a *Activities) runnerFor(agents map[string]config.AgentConfig, aliasTable map[string]string) *agent.Runner {
	runner := agent.NewRunner(a.Config)
	if agents != nil {
		runner.Overrides = agents
	}
	if aliasTable != nil {
		runner.Resolver.Aliases = aliases.NewResolver(aliasTable)
	}
	return runner
}

// heartbeatEvery records activity heartbeats on an interval until the
// returned stop function is called or the context ends.
func heartbeatEvery(ctx context.Context, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				activity.RecordHeartbeat(ctx)
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()
	var once bool
	return func() {
		if !once {
			once = true
			close(done)
		}
	}
}
