package workflows

import (
	"maps"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/gistloop/gistloop/pkg/config"
)

// QueryGetProgress is the query name for workflow progress.
const QueryGetProgress = "get_progress"

// AgentConfigs is the base configuration snapshot loaded through an activity
// so that workflow replay stays deterministic.
type AgentConfigs struct {
	Agents  map[string]config.AgentConfig `json:"agents"`
	Aliases map[string]string             `json:"aliases"`
}

// runState tracks one workflow execution: its timeline, the run-scoped agent
// configuration, and the final result once set.
type runState[TIn, TOut any] struct {
	data     *WorkflowInput[TIn]
	timeline map[string]WorkflowStepStatus
	result   *AgentWorkflowOutput[TOut]

	// agents and aliasTable are the isolated configuration for this run.
	agents     map[string]config.AgentConfig
	aliasTable map[string]string
}

// initRun fills in execution metadata, loads the base agent configuration via
// an activity, applies the run's dynamic overrides, and installs the
// get_progress query handler.
func initRun[TIn, TOut any](ctx workflow.Context, data *WorkflowInput[TIn]) (*runState[TIn, TOut], error) {
	info := workflow.GetInfo(ctx)
	data.WID = WorkflowInfo{
		Name:      info.WorkflowType.Name,
		WID:       info.WorkflowExecution.ID,
		RunID:     info.WorkflowExecution.RunID,
		Namespace: info.Namespace,
	}

	st := &runState[TIn, TOut]{
		data:     data,
		timeline: make(map[string]WorkflowStepStatus),
	}

	actCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
	})
	var base AgentConfigs
	if err := workflow.ExecuteActivity(actCtx, "GetAgentConfigs").Get(ctx, &base); err != nil {
		return nil, err
	}
	st.agents, st.aliasTable = ApplyDynamicConfig(base.Agents, data.AgentConfig, base.Aliases)

	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (*WorkflowProgress[TIn, TOut], error) {
		return st.progress(), nil
	}); err != nil {
		return nil, err
	}

	st.update("Workflow Start", StepRunning)
	return st, nil
}

func (s *runState[TIn, TOut]) update(step string, status WorkflowStepStatus) {
	s.timeline[step] = status
}

func (s *runState[TIn, TOut]) progress() *WorkflowProgress[TIn, TOut] {
	p := &WorkflowProgress[TIn, TOut]{
		StatusTimeline: maps.Clone(s.timeline),
		Input:          &s.data.AgentInput.Context,
	}
	if s.result != nil {
		p.Result = s.result.Result
	}
	return p
}

// ApplyDynamicConfig merges run-scoped overrides over the base configuration
// and returns a new agent table and alias table. Neither input is mutated.
//
// Precedence, most specific first: per-agent overrides, the global model
// override, then the base configuration. A per-agent override on an existing
// agent replaces the model only; an override naming an unknown agent creates
// a full record from it.
func ApplyDynamicConfig(base map[string]config.AgentConfig, dyn *config.DynamicAgentConfig, baseAliases map[string]string) (map[string]config.AgentConfig, map[string]string) {
	agents := make(map[string]config.AgentConfig, len(base))
	maps.Copy(agents, base)

	aliasTable := make(map[string]string, len(baseAliases))
	maps.Copy(aliasTable, baseAliases)

	if dyn == nil {
		return agents, aliasTable
	}

	maps.Copy(aliasTable, dyn.Aliases)

	if dyn.Model != "" {
		for name, ac := range agents {
			ac.Model = dyn.Model
			agents[name] = ac
		}
	}

	for name, info := range dyn.Agents {
		if existing, ok := agents[name]; ok {
			existing.Model = info.Model
			agents[name] = existing
			continue
		}
		agents[name] = config.AgentConfig{
			Name:           name,
			Model:          info.Model,
			Client:         info.Client,
			APIMode:        info.APIMode,
			Settings:       info.Settings,
			MaxInputTokens: info.MaxInputTokens,
			APIKey:         info.APIKey,
			BaseURL:        info.BaseURL,
		}
	}

	return agents, aliasTable
}
