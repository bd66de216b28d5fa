package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func postJSON(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/workflows/summarizer/sync", strings.NewReader(body))
}

func TestDecodeInputValid(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	in, ok := s.decodeInput(rec, postJSON(`{
		"agent_input": {
			"context": {"content": "text to summarize", "summary_type": "pretty", "iterations": 2}
		}
	}`))
	require.True(t, ok)
	assert.Equal(t, "text to summarize", in.AgentInput.Context.Content)
	assert.Equal(t, 2, in.AgentInput.Context.Iterations)
}

func TestDecodeInputBadJSON(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	_, ok := s.decodeInput(rec, postJSON(`{not json`))
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "invalid request body")
}

func TestDecodeInputMissingContent(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	_, ok := s.decodeInput(rec, postJSON(`{"agent_input": {"context": {"content": "   "}}}`))
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "content is required", decode(t, rec)["error"])
}

func TestDecodeInputUnknownSummaryType(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	_, ok := s.decodeInput(rec, postJSON(`{"agent_input": {"context": {"content": "x", "summary_type": "poetic"}}}`))
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "poetic")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "Workflow not found.", map[string]any{"workflow_id": "wf-1"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "Workflow not found.", body["error"])
	assert.Equal(t, "wf-1", body["workflow_id"])
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]string{"workflow_id": "wf-2"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wf-2", decode(t, rec)["workflow_id"])
}
