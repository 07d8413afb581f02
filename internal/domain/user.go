package domain

// UserRole distinguishes administrators from regular members
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User represents an account that can own boards and write comments
type User struct {
	BaseModel
	Name     string   `gorm:"type:varchar(255);not null" json:"name"`
	Email    string   `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	Boards   []Board   `gorm:"foreignKey:OwnerID" json:"boards,omitempty"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
