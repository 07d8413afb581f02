package domain

import "github.com/google/uuid"

// Attachment is a file uploaded onto a task. StorageKey identifies the
// stored object in whichever file store backs the deployment.
type Attachment struct {
	BaseModel
	FileName   string    `gorm:"type:varchar(255);not null" json:"fileName"`
	StorageKey string    `gorm:"type:varchar(512);not null" json:"storageKey"`
	Size       int64     `gorm:"not null;default:0" json:"size"`
	MimeType   string    `gorm:"type:varchar(100)" json:"mimeType"`
	TaskID     uuid.UUID `gorm:"type:uuid;not null;index" json:"taskId"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

func (Attachment) TableName() string {
	return "attachments"
}
