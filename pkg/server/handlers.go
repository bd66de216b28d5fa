package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/gistloop/gistloop/pkg/summarizer"
	"github.com/gistloop/gistloop/pkg/temporal"
	"github.com/gistloop/gistloop/pkg/workflows"
)

// maxSyncIterations caps the refinement loop on the multi-type sync endpoint
// so two parallel branches stay within the request timeout.
const maxSyncIterations = 3

// SummaryWorkflowResponse is the single-type sync response.
type SummaryWorkflowResponse struct {
	Result       *summarizer.SummaryOutput `json:"result,omitempty"`
	WorkflowInfo workflows.WorkflowInfo    `json:"workflow_info"`
}

// SummariesWorkflowResponse is the multi-type sync response.
type SummariesWorkflowResponse struct {
	Result       *summarizer.SummariesResult `json:"result,omitempty"`
	WorkflowInfo workflows.WorkflowInfo      `json:"workflow_info"`
}

type summaryWorkflowInput = workflows.WorkflowInput[summarizer.SummaryInput]

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (*summaryWorkflowInput, bool) {
	var in summaryWorkflowInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return nil, false
	}
	if strings.TrimSpace(in.AgentInput.Context.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required", nil)
		return nil, false
	}
	if st := in.AgentInput.Context.SummaryType; st != "" && !st.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown summary_type %q", st), nil)
		return nil, false
	}
	return &in, true
}

func (s *Server) startWorkflow(ctx context.Context, workflowName, idPrefix string, in *summaryWorkflowInput) (client.WorkflowRun, string, error) {
	workflowID := fmt.Sprintf("%s-%s", idPrefix, strings.ReplaceAll(uuid.NewString(), "-", ""))
	in.WID = workflows.WorkflowInfo{WID: workflowID, Name: workflowName}

	run, err := s.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: temporal.TaskQueue(&s.cfg.Temporal),
	}, workflowName, *in)
	if err != nil {
		return nil, workflowID, err
	}

	s.metrics.WorkflowsStarted.WithLabelValues(workflowName).Inc()
	return run, workflowID, nil
}

// handleSummarizeSync starts a single-type summarization and waits for it.
func (s *Server) handleSummarizeSync(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	run, workflowID, err := s.startWorkflow(r.Context(), "SummarizeWorkflow", "summarizer-one-type-sync", in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start workflow: "+err.Error(), nil)
		return
	}

	timeout := s.cfg.Server.SyncTimeout
	waitCtx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	var out workflows.AgentWorkflowOutput[summarizer.InternalSummaryResult]
	if err := run.Get(waitCtx, &out); err != nil {
		if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			writeError(w, http.StatusInternalServerError, "Workflow did not complete within the specified timeout", map[string]any{
				"workflow_id": workflowID,
				"timeout":     timeout.Seconds(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error(), map[string]any{"workflow_id": workflowID})
		return
	}

	resp := SummaryWorkflowResponse{WorkflowInfo: out.WorkflowInfo}
	if out.Result != nil {
		summary := out.Result.Summary
		resp.Result = &summary
		s.metrics.SummariesTotal.WithLabelValues(string(out.Result.SummaryType), "ok").Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSummarizeAllSync starts the multi-type summarization and waits for
// it. Iterations are clamped; the wait allows both branches to run their
// full loops.
func (s *Server) handleSummarizeAllSync(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	if in.AgentInput.Context.Iterations > maxSyncIterations {
		slog.Warn("Maximum iterations is reduced", "requested", in.AgentInput.Context.Iterations, "max", maxSyncIterations)
		in.AgentInput.Context.Iterations = maxSyncIterations
	}

	run, workflowID, err := s.startWorkflow(r.Context(), "SummarizeAllWorkflow", "summarizer-all-sync", in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start workflow: "+err.Error(), nil)
		return
	}

	timeout := 2 * s.cfg.Server.SyncTimeout
	waitCtx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	var out workflows.AgentWorkflowOutput[summarizer.InternalSummariesAllResult]
	if err := run.Get(waitCtx, &out); err != nil {
		if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			writeError(w, http.StatusInternalServerError, "Workflow did not complete within the specified timeout", map[string]any{
				"workflow_id": workflowID,
				"timeout":     timeout.Seconds(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error(), map[string]any{"workflow_id": workflowID})
		return
	}

	resp := SummariesWorkflowResponse{WorkflowInfo: out.WorkflowInfo}
	if out.Result != nil {
		resp.Result = out.Result.Public()
		for t, res := range out.Result.Summaries {
			outcome := "ok"
			if res == nil {
				outcome = "failed"
			}
			s.metrics.SummariesTotal.WithLabelValues(string(t), outcome).Inc()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSummarizeRun starts a single-type summarization and returns its ID.
func (s *Server) handleSummarizeRun(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	_, workflowID, err := s.startWorkflow(r.Context(), "SummarizeWorkflow", "summarizer-one-type", in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start workflow: "+err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"workflow_id": workflowID})
}

// handleSummarizeAllRun starts the multi-type summarization and returns its ID.
func (s *Server) handleSummarizeAllRun(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	_, workflowID, err := s.startWorkflow(r.Context(), "SummarizeAllWorkflow", "summarizer-all", in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start workflow: "+err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"workflow_id": workflowID})
}
