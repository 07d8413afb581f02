package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLog is one append-only audit entry on a task. Action is a
// human-readable description of what happened. Details optionally
// carries the structured before/after values behind the description.
// Rows are never updated or deleted by normal flows; they disappear
// only when their task is deleted.
type ActivityLog struct {
	BaseModel
	Action  string         `gorm:"type:text;not null" json:"action"`
	Details datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	TaskID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"taskId"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
