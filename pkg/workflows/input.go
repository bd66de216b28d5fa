package workflows

import "github.com/gistloop/gistloop/pkg/config"

// AgentInput wraps the domain input handed to the agents.
type AgentInput[T any] struct {
	Context T `json:"context"`

	// LLMInput is optional free-form text appended to the agent messages.
	LLMInput string `json:"llm_input,omitempty"`
}

// WorkflowInput is the common workflow start payload: the agent input, an
// optional run-scoped configuration override, and identification metadata.
type WorkflowInput[T any] struct {
	AgentInput  AgentInput[T]              `json:"agent_input"`
	AgentConfig *config.DynamicAgentConfig `json:"agent_config,omitempty"`
	WID         WorkflowInfo               `json:"wid,omitempty"`
	Visibility  Visibility                 `json:"visibility,omitempty"`
}

// AgentWorkflowOutput is the common workflow result envelope.
type AgentWorkflowOutput[T any] struct {
	Result       *T           `json:"result,omitempty"`
	WorkflowInfo WorkflowInfo `json:"workflow_info"`
}
