package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches the users.role check constraint)
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// IsValidRole reports whether s names a known role
func IsValidRole(s string) bool {
	return s == string(RoleGuest) || s == string(RoleAdmin)
}

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Response is the public representation of a user
type Response struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts entity to response
func (u *User) ToResponse() *Response {
	return &Response{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
