package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kanban-api/internal/domain"
	"kanban-api/internal/middleware"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// actorFrom reads the authenticated identity placed by the auth
// middleware. Returns false after writing a 401 when it is missing.
func actorFrom(c *gin.Context) (service.Actor, bool) {
	rawID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.NewUnauthorizedError("not authenticated"))
		return service.Actor{}, false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.NewUnauthorizedError("not authenticated"))
		return service.Actor{}, false
	}
	role, _ := c.Get(middleware.ContextUserRole)
	roleStr, _ := role.(string)
	return service.Actor{ID: userID, Role: domain.UserRole(roleStr)}, true
}

// pathUUID parses a UUID path parameter. Returns false after writing
// a 400 when it is malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest,
			response.NewValidationError(name+" must be a valid uuid", err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// intQuery parses an integer query parameter, falling back to def
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
