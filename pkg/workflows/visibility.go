// Package workflows defines the Temporal workflows, their activities and the
// progress reporting surface exposed through queries.
package workflows

import "time"

// WorkflowStepStatus is the status of one step in a workflow timeline.
type WorkflowStepStatus string

const (
	StepPending   WorkflowStepStatus = "pending"
	StepRunning   WorkflowStepStatus = "running"
	StepCompleted WorkflowStepStatus = "completed"
	StepFailed    WorkflowStepStatus = "failed"
	StepSkipped   WorkflowStepStatus = "skipped"
)

// WorkflowInfo identifies one workflow execution.
type WorkflowInfo struct {
	Name      string `json:"name,omitempty"`
	WID       string `json:"wid,omitempty"`
	RunID     string `json:"run_id,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// WorkflowStep is one node in the execution graph.
type WorkflowStep struct {
	ID        string             `json:"id,omitempty"`
	Name      string             `json:"name,omitempty"`
	Status    WorkflowStepStatus `json:"status,omitempty"`
	StartTime *time.Time         `json:"start_time,omitempty"`
	EndTime   *time.Time         `json:"end_time,omitempty"`
	Children  []WorkflowStep     `json:"children,omitempty"`
	Metadata  map[string]string  `json:"metadata,omitempty"`
}

// Visibility carries tracing and grouping identifiers for a run.
type Visibility struct {
	Steps   WorkflowStep `json:"steps,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
	GroupID string       `json:"group_id,omitempty"`
}

// WorkflowProgress is the answer to the get_progress query.
type WorkflowProgress[TIn, TOut any] struct {
	// StatusTimeline maps step names to their current status.
	StatusTimeline map[string]WorkflowStepStatus `json:"status_timeline"`

	// Input is the input the workflow was started with.
	Input *TIn `json:"input,omitempty"`

	// Result is the final result, nil while the workflow is still running.
	Result *TOut `json:"result,omitempty"`

	IntermediateResults map[string]any `json:"intermediate_results,omitempty"`
}
