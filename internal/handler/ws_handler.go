package handler

import (
	"github.com/gin-gonic/gin"

	"kanban-api/internal/realtime"
)

// WSHandler upgrades board event subscriptions
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler creates the websocket handler
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Subscribe godoc
// @Summary Subscribe to board update events over websocket
// @Tags realtime
// @Router /ws [get]
func (h *WSHandler) Subscribe(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
