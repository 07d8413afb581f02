package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// TagHandler exposes tag catalog endpoints
type TagHandler struct {
	tagService service.TagService
	logger     *zap.Logger
}

// NewTagHandler creates the tag handler
func NewTagHandler(tagService service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{tagService: tagService, logger: logger}
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Tag"
// @Success 201 {object} domain.Tag
// @Router /api/tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// ListTags godoc
// @Summary List all tags
// @Tags tags
// @Produce json
// @Success 200 {array} domain.Tag
// @Router /api/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// UpdateTag godoc
// @Summary Patch a tag's name or color
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body dto.UpdateTagRequest true "Patch"
// @Success 200 {object} domain.Tag
// @Router /api/tags/{id} [patch]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), tagID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag and detach it from all tasks
// @Tags tags
// @Param id path string true "Tag ID"
// @Success 204
// @Router /api/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), tagID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
