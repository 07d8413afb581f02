package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// TaskHandler exposes task endpoints
type TaskHandler struct {
	taskService service.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates the task handler
func NewTaskHandler(taskService service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// CreateTask godoc
// @Summary Add a task at the end of a column
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} domain.Task
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task with tags, subtasks and attachments
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), actor, taskID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Partially update a task
// @Description Absent fields are untouched. An explicit null dueDate clears
// @Description the date. A columnId change moves the task to the end of the
// @Description destination column. An empty tagIds array removes all tags.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Patch"
// @Success 200 {object} domain.Task
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, taskID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), actor, taskID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListActivity godoc
// @Summary List a task's activity trail, newest first
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} domain.ActivityLog
// @Router /tasks/{id}/activity [get]
func (h *TaskHandler) ListActivity(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	entries, err := h.taskService.ListActivity(c.Request.Context(), actor, taskID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
