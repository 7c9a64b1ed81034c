package password

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmaestri/roleplay/internal/user"
	"github.com/rmaestri/roleplay/pkg/response"
)

// Handler handles HTTP requests for the password-reset workflow
type Handler struct {
	service *Service
}

// NewHandler creates a new password handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ForgotPassword handles POST /forgot-password
// @Summary      Request a password reset
// @Description  Mail a reset link carrying a fresh single-use token
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Forgot password request"
// @Success      204
// @Failure      404 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Router       /forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	if err := h.service.Forgot(r.Context(), req.Email, req.ResetPasswordURL); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "failed to process forgot password")
		return
	}

	response.NoContent(w)
}

// ResetPassword handles POST /reset-password
// @Summary      Reset the password
// @Description  Consume a reset token and set the new password
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Reset password request"
// @Success      204
// @Failure      404 {object} response.ErrorResponse
// @Failure      410 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Router       /reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	if err := h.service.Reset(r.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrTokenExpired):
			response.Gone(w, err.Error())
		default:
			response.InternalError(w, "failed to reset password")
		}
		return
	}

	response.NoContent(w)
}
