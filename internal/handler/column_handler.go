package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// ColumnHandler exposes column endpoints
type ColumnHandler struct {
	columnService service.ColumnService
	taskService   service.TaskService
	logger        *zap.Logger
}

// NewColumnHandler creates the column handler
func NewColumnHandler(columnService service.ColumnService, taskService service.TaskService, logger *zap.Logger) *ColumnHandler {
	return &ColumnHandler{columnService: columnService, taskService: taskService, logger: logger}
}

// CreateColumn godoc
// @Summary Add a column at the end of a board
// @Tags columns
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body dto.CreateColumnRequest true "Column"
// @Success 201 {object} domain.Column
// @Router /boards/{id}/columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	column, err := h.columnService.CreateColumn(c.Request.Context(), actor, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// UpdateColumn godoc
// @Summary Rename a column
// @Tags columns
// @Accept json
// @Produce json
// @Param id path string true "Column ID"
// @Param request body dto.UpdateColumnRequest true "Column"
// @Success 200 {object} domain.Column
// @Router /columns/{id} [patch]
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	column, err := h.columnService.UpdateColumn(c.Request.Context(), actor, columnID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// DeleteColumn godoc
// @Summary Delete a column and its tasks
// @Tags columns
// @Param id path string true "Column ID"
// @Success 204
// @Router /columns/{id} [delete]
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(c.Request.Context(), actor, columnID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderColumns godoc
// @Summary Reorder the columns of a board
// @Description The payload must list every column of the board exactly
// @Description once; anything else is rejected and nothing changes.
// @Tags columns
// @Accept json
// @Produce json
// @Param request body dto.ReorderColumnsRequest true "New order"
// @Success 200 {object} map[string]bool
// @Router /columns/reorder [put]
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.columnService.ReorderColumns(c.Request.Context(), actor, &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderTasks godoc
// @Summary Reorder the tasks of a column
// @Description The payload must list every task of the column exactly
// @Description once; anything else is rejected and nothing changes.
// @Tags columns
// @Accept json
// @Produce json
// @Param id path string true "Column ID"
// @Param request body dto.ReorderTasksRequest true "New order"
// @Success 200 {object} map[string]bool
// @Router /columns/{id}/tasks/reorder [put]
func (h *ColumnHandler) ReorderTasks(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.taskService.ReorderTasks(c.Request.Context(), actor, columnID, &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
