package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"
)

// EchoWorkflow round-trips a message through the Echo activity. It exists to
// verify that a worker is polling the queue and executing activities.
func EchoWorkflow(ctx workflow.Context, msg string) (string, error) {
	actCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
	})
	var out string
	if err := workflow.ExecuteActivity(actCtx, "Echo", msg).Get(ctx, &out); err != nil {
		return "", err
	}
	return out, nil
}
