package dto

import (
	"github.com/google/uuid"
)

// CreateBoardRequest creates a board owned by the authenticated user
type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// UpdateBoardRequest renames a board
type UpdateBoardRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// CreateColumnRequest adds a column at the end of a board
type CreateColumnRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// UpdateColumnRequest renames a column
type UpdateColumnRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// ReorderColumnsRequest replaces the column ordering of a board.
// The IDs must be exactly the board's current column set.
type ReorderColumnsRequest struct {
	ColumnIDs []uuid.UUID `json:"columnIds" binding:"required"`
}

// CreateTaskRequest adds a task at the end of a column
type CreateTaskRequest struct {
	Content  string       `json:"content" binding:"required"`
	ColumnID uuid.UUID    `json:"columnId" binding:"required"`
	Priority string       `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate  NullableTime `json:"dueDate"`
	TagIDs   []uuid.UUID  `json:"tagIds"`
}

// UpdateTaskRequest patches a task. Nil pointer fields are left
// untouched; DueDate uses tri-state presence tracking so an explicit
// null clears the date. A non-nil empty TagIDs slice removes all tags.
type UpdateTaskRequest struct {
	Content  *string      `json:"content"`
	Priority *string      `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate  NullableTime `json:"dueDate"`
	ColumnID *uuid.UUID   `json:"columnId"`
	TagIDs   *[]uuid.UUID `json:"tagIds"`
}

// ReorderTasksRequest replaces the task ordering of a column.
// The IDs must be exactly the column's current task set.
type ReorderTasksRequest struct {
	TaskIDs []uuid.UUID `json:"taskIds" binding:"required"`
}

// CreateSubtaskRequest adds a checklist item to a task
type CreateSubtaskRequest struct {
	Content string `json:"content" binding:"required,max=255"`
}

// UpdateSubtaskRequest patches a subtask
type UpdateSubtaskRequest struct {
	Content     *string `json:"content" binding:"omitempty,max=255"`
	IsCompleted *bool   `json:"isCompleted"`
}

// CreateCommentRequest adds a comment to a task
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateTagRequest creates a reusable tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// UpdateTagRequest patches a tag
type UpdateTagRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// RegisterRequest creates a user account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest provisions an account on behalf of someone else.
// Admin only. The new user gets a default board with starter columns,
// same as self-service registration.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// ResetPasswordRequest replaces a user's password. Admin only.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileRequest lets a user rename themselves and optionally
// change their own password.
type UpdateProfileRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}
