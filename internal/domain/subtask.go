package domain

import "github.com/google/uuid"

// Subtask is a checklist item belonging to a task
type Subtask struct {
	BaseModel
	Content     string    `gorm:"type:varchar(255);not null" json:"content"`
	IsCompleted bool      `gorm:"not null;default:false" json:"isCompleted"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index" json:"taskId"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

func (Subtask) TableName() string {
	return "subtasks"
}
