package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User is a credential record. Password holds a bcrypt hash.
type User struct {
	Username string `gorm:"primaryKey;type:varchar(100)" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null" json:"role"`
}
