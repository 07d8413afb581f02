package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/response"
)

// handleServiceError maps service-layer errors onto HTTP responses
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.NewNotFoundError("resource not found"))
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.SendError(c, response.StatusForCode(appErr.Code), appErr)
		return
	}

	logger.Error("unhandled service error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	response.SendError(c, http.StatusInternalServerError,
		response.NewInternalError("internal server error"))
}
