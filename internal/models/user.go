package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMother    = "mother"
	RoleCaretaker = "caretaker"
	RoleAdmin     = "admin"
)

func ValidRole(role string) bool {
	return role == RoleMother || role == RoleCaretaker || role == RoleAdmin
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Phone        *string    `json:"phone"`
	ProfilePhoto *string    `json:"profile_photo"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	ProfilePhoto *string `json:"profile_photo"`
	IsActive     *bool   `json:"is_active"`
}
