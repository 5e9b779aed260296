package handlers

import (
	"net/http"

	"doclens-api/internal/orchestrator"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles document-analysis task submissions
type TaskHandler struct {
	orchestratorService orchestrator.OrchestratorService
	logger              *logger.Logger
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(orchestratorService orchestrator.OrchestratorService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		orchestratorService: orchestratorService,
		logger:              logger,
	}
}

// taskRequestBody is the wire shape of a task submission
type taskRequestBody struct {
	Type    string                   `json:"type" binding:"required"`
	Text    string                   `json:"text" binding:"required"`
	Context string                   `json:"context"`
	Options orchestrator.TaskOptions `json:"options"`
}

// PerformTask processes a task submission and returns the normalized result.
// Degraded results are a normal 200 response; only request validation
// failures return 400.
func (h *TaskHandler) PerformTask(c *gin.Context) {
	var body taskRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("Rejected malformed task submission", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := orchestrator.TaskRequest{
		Type:    orchestrator.TaskType(body.Type),
		Text:    body.Text,
		Context: body.Context,
		Options: body.Options,
	}

	result, err := h.orchestratorService.PerformTask(c.Request.Context(), req)
	if err != nil {
		if orchestrator.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Task execution failed unexpectedly", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.logger.Info("Task completed",
		"task_type", string(result.Type),
		"provider", result.Provider,
		"degraded", result.Degraded)

	c.JSON(http.StatusOK, result)
}
