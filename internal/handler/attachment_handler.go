package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// AttachmentHandler exposes attachment endpoints
type AttachmentHandler struct {
	attachmentService service.AttachmentService
	logger            *zap.Logger
}

// NewAttachmentHandler creates the attachment handler
func NewAttachmentHandler(attachmentService service.AttachmentService, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService, logger: logger}
}

// Upload godoc
// @Summary Upload a file onto a task
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Task ID"
// @Param file formData file true "File"
// @Success 201 {object} domain.Attachment
// @Router /api/tasks/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest,
			response.NewValidationError("multipart field 'file' is required", err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest,
			response.NewValidationError("could not read uploaded file", err.Error()))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(
		c.Request.Context(), actor, taskID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// Delete godoc
// @Summary Delete an attachment
// @Tags attachments
// @Param id path string true "Attachment ID"
// @Success 204
// @Router /api/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	attachmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), actor, attachmentID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
