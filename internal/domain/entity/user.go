package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin      = "admin"
	RoleFranchisee = "franchisee"
	RoleDiner      = "diner"
)

// UserRole is a single role grant. ObjectID scopes a franchisee grant to a
// franchise; it is zero for global roles (admin, diner).
type UserRole struct {
	Role     string
	ObjectID int64
}

// User represents a registered account. PasswordHash is a bcrypt hash and is
// never serialized back to clients.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Roles        []UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds the given global role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsFranchiseAdmin reports whether the user holds a franchisee grant scoped to
// the given franchise.
func (u *User) IsFranchiseAdmin(franchiseID int64) bool {
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.ObjectID == franchiseID {
			return true
		}
	}
	return false
}
