package domain

import "github.com/google/uuid"

// Board is the top-level container a user organizes work in.
// Each board belongs to exactly one owner and holds an ordered set of columns.
type Board struct {
	BaseModel
	Title   string    `gorm:"type:varchar(255);not null" json:"title"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`

	Owner   *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Columns []Column `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
}

func (Board) TableName() string {
	return "boards"
}

// DefaultColumnNames are seeded into the board created for every new
// user account, in this order.
var DefaultColumnNames = []string{"Pendiente", "En Proceso", "Terminado"}
