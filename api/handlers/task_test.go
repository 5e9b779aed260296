package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"doclens-api/internal/orchestrator"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock orchestrator service
type mockOrchestratorService struct {
	result  *orchestrator.TaskResult
	err     error
	lastReq orchestrator.TaskRequest
}

func (m *mockOrchestratorService) PerformTask(_ context.Context, req orchestrator.TaskRequest) (*orchestrator.TaskResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func setupTaskTest(service orchestrator.OrchestratorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewTaskHandler(service, logger.New())
	router.POST("/tasks", handler.PerformTask)
	return router
}

func postTask(router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_PerformTask_Success(t *testing.T) {
	service := &mockOrchestratorService{
		result: &orchestrator.TaskResult{
			Type:          orchestrator.TaskSummarize,
			Output:        "a short summary",
			Provider:      "openai",
			Degraded:      false,
			CorrelationID: "abc-123",
		},
	}
	router := setupTaskTest(service)

	w := postTask(router, map[string]interface{}{
		"type": "summarize",
		"text": "a long document",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response orchestrator.TaskResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "a short summary", response.Output)
	assert.Equal(t, "openai", response.Provider)
	assert.False(t, response.Degraded)

	assert.Equal(t, orchestrator.TaskSummarize, service.lastReq.Type)
	assert.Equal(t, "a long document", service.lastReq.Text)
}

func TestTaskHandler_PerformTask_DegradedIsStillOK(t *testing.T) {
	service := &mockOrchestratorService{
		result: &orchestrator.TaskResult{
			Type:     orchestrator.TaskTranslate,
			Output:   "Translation did not occur.",
			Provider: orchestrator.PlaceholderProvider,
			Degraded: true,
		},
	}
	router := setupTaskTest(service)

	w := postTask(router, map[string]interface{}{
		"type":    "translate",
		"text":    "hello",
		"options": map[string]string{"target_lang": "hi"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response orchestrator.TaskResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Degraded)
	assert.Equal(t, orchestrator.PlaceholderProvider, response.Provider)
}

func TestTaskHandler_PerformTask_OptionsPassedThrough(t *testing.T) {
	service := &mockOrchestratorService{
		result: &orchestrator.TaskResult{Type: orchestrator.TaskAnswerQuestion, Output: "42", Provider: "anthropic"},
	}
	router := setupTaskTest(service)

	w := postTask(router, map[string]interface{}{
		"type":    "answer-question",
		"text":    "the document",
		"context": "extra context",
		"options": map[string]string{"question": "what is the answer?"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "what is the answer?", service.lastReq.Options.Question)
	assert.Equal(t, "extra context", service.lastReq.Context)
}

func TestTaskHandler_PerformTask_ValidationErrorReturns400(t *testing.T) {
	service := &mockOrchestratorService{
		err: orchestrator.NewValidationError("options.target_lang", "target_lang is required for translate tasks"),
	}
	router := setupTaskTest(service)

	w := postTask(router, map[string]interface{}{
		"type": "translate",
		"text": "hello",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "target_lang")
}

func TestTaskHandler_PerformTask_MalformedBodyReturns400(t *testing.T) {
	service := &mockOrchestratorService{}
	router := setupTaskTest(service)

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_PerformTask_MissingRequiredFieldsReturns400(t *testing.T) {
	service := &mockOrchestratorService{}
	router := setupTaskTest(service)

	w := postTask(router, map[string]interface{}{"type": "summarize"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_PerformTask_UnexpectedErrorReturns500(t *testing.T) {
	service := &mockOrchestratorService{err: errors.New("boom")}
	router := setupTaskTest(service)

	w := postTask(router, map[string]interface{}{
		"type": "summarize",
		"text": "a document",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "internal error", response["error"])
}
