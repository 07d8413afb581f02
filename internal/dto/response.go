package dto

import (
	"time"

	"github.com/google/uuid"

	"kanban-api/internal/domain"
)

// LoginResponse is the payload returned on successful authentication
type LoginResponse struct {
	Token  string    `json:"token"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	UserID uuid.UUID `json:"userId"`
}

// UserResponse is the public view of a user account
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse strips credentials from a user record
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// CommentPage is one page of comments, newest first
type CommentPage struct {
	Comments []domain.Comment `json:"comments"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// PriorityCount is one row of the tasks-by-priority breakdown
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

// UserTaskCount is one row of the tasks-by-user breakdown
type UserTaskCount struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Count  int64     `json:"count"`
}

// AdminStats summarizes platform usage for administrators
type AdminStats struct {
	TotalUsers      int64           `json:"totalUsers"`
	TotalBoards     int64           `json:"totalBoards"`
	TotalTasks      int64           `json:"totalTasks"`
	TasksByPriority []PriorityCount `json:"tasksByPriority"`
	TasksByUser     []UserTaskCount `json:"tasksByUser"`
}
