package service

import (
	"github.com/google/uuid"

	"kanban-api/internal/domain"
	"kanban-api/internal/realtime"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	ID   uuid.UUID
	Role domain.UserRole
}

// CanAccessBoard reports whether the actor may read or mutate the board
func (a Actor) CanAccessBoard(board *domain.Board) bool {
	return a.Role == domain.RoleAdmin || board.OwnerID == a.ID
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// Notifier pushes board events to connected clients
type Notifier interface {
	Broadcast(event realtime.BoardEvent)
}
