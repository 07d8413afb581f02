package domain

import "github.com/google/uuid"

// Comment is a message a user left on a task
type Comment struct {
	BaseModel
	Content  string    `gorm:"type:text;not null" json:"content"`
	TaskID   uuid.UUID `gorm:"type:uuid;not null;index" json:"taskId"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"authorId"`

	Task   *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
