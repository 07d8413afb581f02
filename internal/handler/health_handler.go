package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-api/internal/database"
)

// HealthHandler reports liveness and readiness
type HealthHandler struct{}

// NewHealthHandler creates the health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health godoc
// @Summary Liveness and database readiness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "connected"
	code := http.StatusOK
	if !database.IsConnected() {
		dbStatus = "disconnected"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
	})
}

// Ready godoc
// @Summary Readiness probe, fails until the database is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if !database.IsConnected() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
