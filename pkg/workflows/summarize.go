package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/gistloop/gistloop/pkg/summarizer"
)

// summarizerActivityOptions bounds one refinement loop run: up to five minutes
// per attempt, a heartbeat each minute, three attempts total.
func summarizerActivityOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		HeartbeatTimeout:    1 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})
}

// SummarizeWorkflow generates one summary type for a text.
func SummarizeWorkflow(ctx workflow.Context, data WorkflowInput[summarizer.SummaryInput]) (*AgentWorkflowOutput[summarizer.InternalSummaryResult], error) {
	st, err := initRun[summarizer.SummaryInput, summarizer.InternalSummaryResult](ctx, &data)
	if err != nil {
		return nil, err
	}
	st.update("Input Processing", StepCompleted)
	st.update("Summarizing Text", StepRunning)

	actCtx := summarizerActivityOptions(ctx)
	in := OneTypeActivityInput{
		Input:   data.AgentInput.Context,
		Agents:  st.agents,
		Aliases: st.aliasTable,
	}

	var result summarizer.InternalSummaryResult
	if err := workflow.ExecuteActivity(actCtx, "RunSummarizerOneType", in).Get(ctx, &result); err != nil {
		st.update("Summarizing Text", StepFailed)
		st.update("Workflow End", StepFailed)
		return nil, err
	}

	st.result = &AgentWorkflowOutput[summarizer.InternalSummaryResult]{
		Result:       &result,
		WorkflowInfo: data.WID,
	}
	st.update("Summarizing Text", StepCompleted)
	st.update("Workflow End", StepCompleted)
	return st.result, nil
}

// SummarizeAllWorkflow generates every summary type in parallel. A failed
// branch is logged and its type left out of the result; the workflow succeeds
// as long as it can report what the other branches produced.
func SummarizeAllWorkflow(ctx workflow.Context, data WorkflowInput[summarizer.SummaryInput]) (*AgentWorkflowOutput[summarizer.InternalSummariesAllResult], error) {
	st, err := initRun[summarizer.SummaryInput, summarizer.InternalSummariesAllResult](ctx, &data)
	if err != nil {
		return nil, err
	}
	st.update("Input Processing", StepCompleted)
	st.update("Summarizing Text (Multi)", StepRunning)

	logger := workflow.GetLogger(ctx)
	actCtx := summarizerActivityOptions(ctx)

	types := summarizer.AllSummaryTypes()
	futures := make([]workflow.Future, len(types))
	for i, t := range types {
		branchInput := data.AgentInput.Context
		branchInput.SummaryType = t
		futures[i] = workflow.ExecuteActivity(actCtx, "RunSummarizerOneType", OneTypeActivityInput{
			Input:   branchInput,
			Agents:  st.agents,
			Aliases: st.aliasTable,
		})
	}

	results := make(map[summarizer.SummaryType]*summarizer.InternalSummaryResult, len(types))
	for i, f := range futures {
		var res summarizer.InternalSummaryResult
		if err := f.Get(ctx, &res); err != nil {
			logger.Error("A summarization activity failed", "summary_type", types[i], "error", err)
			continue
		}
		results[res.SummaryType] = &res
	}

	st.result = &AgentWorkflowOutput[summarizer.InternalSummariesAllResult]{
		Result:       &summarizer.InternalSummariesAllResult{Summaries: results},
		WorkflowInfo: data.WID,
	}
	st.update("Summarizing Text (Multi)", StepCompleted)
	st.update("Workflow End", StepCompleted)
	return st.result, nil
}
