package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority is the urgency level of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidPriority reports whether p is one of the known priority levels
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work living inside a column. Position is a dense
// zero-based rank among the tasks of the same column.
type Task struct {
	BaseModel
	Content  string       `gorm:"type:text;not null" json:"content"`
	Priority TaskPriority `gorm:"type:varchar(10);not null;default:'low'" json:"priority"`
	Position int          `gorm:"column:position;not null;default:0" json:"order"`
	DueDate  *time.Time   `gorm:"index" json:"dueDate,omitempty"`
	ColumnID uuid.UUID    `gorm:"type:uuid;not null;index" json:"columnId"`

	Column      *Column      `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Tags        []Tag        `gorm:"many2many:task_tags;" json:"tags,omitempty"`
	Subtasks    []Subtask    `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
