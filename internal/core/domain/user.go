package domain

import "time"

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleCreator  Role = "creator"
	RoleBusiness Role = "business"
)

// Valid reports whether the role is one of the two known sides.
func (r Role) Valid() bool {
	return r == RoleCreator || r == RoleBusiness
}

// User is a registered account, either a creator or a business. The
// password hash never leaves the core.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry,omitempty"`
	Categories   []string  `json:"categories,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved reference handed to collaborators: who a user
// id belongs to and which side of the marketplace they are on.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
}
