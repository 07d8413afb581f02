package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-api/internal/dto"
	"kanban-api/internal/response"
	"kanban-api/internal/service"
)

// UserHandler exposes account and admin endpoints
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates the user handler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// GetMe godoc
// @Summary Get the calling user's account
// @Tags users
// @Produce json
// @Success 200 {object} domain.User
// @Router /api/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), actor, actor.ID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List all accounts (admin)
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create an account (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} domain.User
// @Router /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ResetPassword godoc
// @Summary Set a new password for an account (admin)
// @Tags users
// @Accept json
// @Param id path string true "User ID"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} map[string]bool
// @Router /api/users/{id}/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), actor, userID, &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateProfile godoc
// @Summary Update the calling user's name and optionally password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} domain.User
// @Router /api/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete an account and everything it owns (admin)
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary Platform usage counters (admin)
// @Tags users
// @Produce json
// @Success 200 {object} dto.AdminStats
// @Router /api/admin/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	stats, err := h.userService.Stats(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
