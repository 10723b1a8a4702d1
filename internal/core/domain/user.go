package domain

import (
	"strings"
	"time"
)

// Role is the coarse permission class of a user.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole accepts only the three known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleCandidate, RoleEmployer, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an account in the credential store.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Principal is the verified identity of a request. It never carries the
// password hash and is never persisted.
type Principal struct {
	ID    string
	Email string
	Role  Role
}

// Principal strips the credential material from the stored user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}
