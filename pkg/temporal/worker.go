package temporal

import (
	"context"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"golang.org/x/sync/errgroup"

	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/workflows"
)

// workflowByName maps registerable workflow names to their functions.
func workflowByName(name string) (any, bool) {
	switch name {
	case "SummarizeWorkflow":
		return workflows.SummarizeWorkflow, true
	case "SummarizeAllWorkflow":
		return workflows.SummarizeAllWorkflow, true
	case "EchoWorkflow":
		return workflows.EchoWorkflow, true
	}
	return nil, false
}

// activityByName maps registerable activity names to methods on the set.
func activityByName(acts *workflows.Activities, name string) (any, bool) {
	switch name {
	case "RunSummarizerOneType":
		return acts.RunSummarizerOneType, true
	case "GetAgentConfigs":
		return acts.GetAgentConfigs, true
	case "Echo":
		return acts.Echo, true
	}
	return nil, false
}

// NewWorkers builds one worker per configured worker entry, registering the
// workflows and activities each entry names.
func NewWorkers(c client.Client, cfg *config.Config) ([]worker.Worker, error) {
	acts := workflows.NewActivities(cfg)

	out := make([]worker.Worker, 0, len(cfg.Temporal.Workers))
	for _, wc := range cfg.Temporal.Workers {
		w := worker.New(c, wc.Queue, worker.Options{})

		for _, name := range wc.Workflows {
			fn, ok := workflowByName(name)
			if !ok {
				return nil, fmt.Errorf("worker %s: unknown workflow %q", wc.Name, name)
			}
			w.RegisterWorkflowWithOptions(fn, workflow.RegisterOptions{Name: name})
		}
		for _, name := range wc.Activities {
			fn, ok := activityByName(acts, name)
			if !ok {
				return nil, fmt.Errorf("worker %s: unknown activity %q", wc.Name, name)
			}
			w.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
		}

		slog.Info("Configured worker",
			"name", wc.Name,
			"queue", wc.Queue,
			"workflows", len(wc.Workflows),
			"activities", len(wc.Activities),
		)
		out = append(out, w)
	}
	return out, nil
}

// RunWorkers starts every configured worker and blocks until the context is
// cancelled or a worker fails.
func RunWorkers(ctx context.Context, c client.Client, cfg *config.Config) error {
	workers, err := NewWorkers(c, cfg)
	if err != nil {
		return err
	}
	if len(workers) == 0 {
		return fmt.Errorf("no workers configured")
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error {
			if err := w.Start(); err != nil {
				return fmt.Errorf("failed to start worker: %w", err)
			}
			<-ctx.Done()
			w.Stop()
			return nil
		})
	}
	return g.Wait()
}
