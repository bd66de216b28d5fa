package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	enums "go.temporal.io/api/enums/v1"

	"github.com/gistloop/gistloop/pkg/workflows"
)

// handleStatus polls any workflow execution: its Temporal status plus the
// progress reported by the get_progress query.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	workflowID := chi.URLParam(r, "workflowID")

	desc, err := s.temporal.DescribeWorkflowExecution(r.Context(), workflowID, "")
	if err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found.", map[string]any{"workflow_id": workflowID})
		return
	}

	status := desc.GetWorkflowExecutionInfo().GetStatus()
	if status == enums.WORKFLOW_EXECUTION_STATUS_FAILED {
		details := "Unknown failure"
		run := s.temporal.GetWorkflow(r.Context(), workflowID, "")
		var out any
		if err := run.Get(r.Context(), &out); err != nil {
			details = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Workflow has failed.", map[string]any{
			"details":     details,
			"workflow_id": workflowID,
		})
		return
	}

	resp, err := s.temporal.QueryWorkflow(r.Context(), workflowID, "", workflows.QueryGetProgress)
	if err != nil {
		slog.Warn("Could not query progress for workflow", "workflow_id", workflowID, "error", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"workflow_status": status.String(),
			"error":           "Failed to query workflow progress. Status is " + status.String() + ".",
			"workflow_id":     workflowID,
		})
		return
	}

	var progress map[string]any
	if err := resp.Get(&progress); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to decode workflow progress: "+err.Error(), map[string]any{
			"workflow_id": workflowID,
		})
		return
	}
	progress["workflow_status"] = status.String()
	writeJSON(w, http.StatusOK, progress)
}
