package domain

// Tag is a reusable label that can be attached to many tasks
type Tag struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Color string `gorm:"type:varchar(20);not null;default:'#808080'" json:"color"`

	Tasks []Task `gorm:"many2many:task_tags;" json:"tasks,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}
