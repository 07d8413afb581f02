package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// SubtaskHandler exposes subtask endpoints
type SubtaskHandler struct {
	subtaskService service.SubtaskService
	logger         *zap.Logger
}

// NewSubtaskHandler creates the subtask handler
func NewSubtaskHandler(subtaskService service.SubtaskService, logger *zap.Logger) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService, logger: logger}
}

// CreateSubtask godoc
// @Summary Add a checklist item to a task
// @Tags subtasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateSubtaskRequest true "Subtask"
// @Success 201 {object} domain.Subtask
// @Router /api/tasks/{id}/subtasks [post]
func (h *SubtaskHandler) CreateSubtask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	subtask, err := h.subtaskService.CreateSubtask(c.Request.Context(), actor, taskID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, subtask)
}

// UpdateSubtask godoc
// @Summary Patch a subtask's content or completion
// @Tags subtasks
// @Accept json
// @Produce json
// @Param id path string true "Subtask ID"
// @Param request body dto.UpdateSubtaskRequest true "Patch"
// @Success 200 {object} domain.Subtask
// @Router /api/subtasks/{id} [patch]
func (h *SubtaskHandler) UpdateSubtask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	subtaskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	subtask, err := h.subtaskService.UpdateSubtask(c.Request.Context(), actor, subtaskID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, subtask)
}

// DeleteSubtask godoc
// @Summary Delete a subtask
// @Tags subtasks
// @Param id path string true "Subtask ID"
// @Success 204
// @Router /api/subtasks/{id} [delete]
func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	subtaskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.subtaskService.DeleteSubtask(c.Request.Context(), actor, subtaskID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
