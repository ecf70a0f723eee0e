package domain

import "time"

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicIdentity is the owner view joined onto property responses.
// Credentials and role are never part of it.
type PublicIdentity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the externally visible identity of the user.
func (u *User) Public() PublicIdentity {
	return PublicIdentity{ID: u.ID, Name: u.Name, Email: u.Email}
}
