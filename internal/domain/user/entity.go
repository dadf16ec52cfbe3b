package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Can review plannings and read everyone's clocks
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManager checks if user is a manager
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	return r == RoleManager || r == RoleEmployee
}
