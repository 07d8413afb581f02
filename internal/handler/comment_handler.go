package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// CommentHandler exposes comment endpoints
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates the comment handler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// CreateComment godoc
// @Summary Add a comment to a task
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} domain.Comment
// @Router /api/tasks/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), actor, taskID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List a task's comments, newest first
// @Tags comments
// @Produce json
// @Param id path string true "Task ID"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.CommentPage
// @Router /api/tasks/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)

	result, err := h.commentService.ListComments(c.Request.Context(), actor, taskID, page, limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Param id path string true "Comment ID"
// @Success 204
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
