package user

import "errors"

// CreateUserRequest represents the request to register a new user
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// Validate checks the fields the core cannot assume were pre-validated
func (r *CreateUserRequest) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return errors.New("username, email and password are required")
	}
	return nil
}

// UpdateUserRequest represents the request to update a user's profile.
// Email and password are required, avatar is optional.
type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// Validate checks the fields the core cannot assume were pre-validated
func (r *UpdateUserRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}
