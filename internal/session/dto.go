package session

import (
	"errors"

	"github.com/rmaestri/roleplay/internal/user"
)

// LoginRequest represents the credentials presented on login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the fields the core cannot assume were pre-validated
func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

// LoginResponse carries the authenticated user and the issued token
type LoginResponse struct {
	User  *user.User `json:"user"`
	Token *Token     `json:"token"`
}
