package password

import "errors"

// ForgotPasswordRequest asks for a reset link to be mailed
type ForgotPasswordRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ResetPasswordURL string `json:"resetPasswordUrl" validate:"required,url"`
}

// Validate checks the fields the core cannot assume were pre-validated
func (r *ForgotPasswordRequest) Validate() error {
	if r.Email == "" || r.ResetPasswordURL == "" {
		return errors.New("email and resetPasswordUrl are required")
	}
	return nil
}

// ResetPasswordRequest consumes a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

// Validate checks the fields the core cannot assume were pre-validated
func (r *ResetPasswordRequest) Validate() error {
	if r.Token == "" || r.Password == "" {
		return errors.New("token and password are required")
	}
	return nil
}
