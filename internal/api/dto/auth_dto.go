package dto

import (
	"time"

	"github.com/spec-kit/internship-platform/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public account view.
type UserResponse struct {
	ID       int64           `json:"id"`
	FullName string          `json:"fullname"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
