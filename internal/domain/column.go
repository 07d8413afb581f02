package domain

import "github.com/google/uuid"

// Column is an ordered lane inside a board. Position is a zero-based
// rank among the columns of the same board. Reordering rewrites every
// position; deleting a column leaves a gap, which is fine because
// position is a relative ranking key, not an array index.
type Column struct {
	BaseModel
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Position int       `gorm:"column:position;not null;default:0" json:"order"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index" json:"boardId"`

	Board *Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Tasks []Task `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}

func (Column) TableName() string {
	return "columns"
}
