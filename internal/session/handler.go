package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmaestri/roleplay/pkg/middleware"
	"github.com/rmaestri/roleplay/pkg/response"
)

// Handler handles HTTP requests for session operations
type Handler struct {
	service *Service
}

// NewHandler creates a new session handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /sessions
// @Summary      Log in
// @Description  Verify credentials and issue a bearer token
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      201 {object} LoginResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "failed to log in")
		return
	}

	response.JSON(w, http.StatusCreated, &LoginResponse{User: user, Token: token})
}

// Destroy handles DELETE /sessions
// @Summary      Log out
// @Description  Revoke the presented bearer token
// @Tags         sessions
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.ErrorResponse
// @Router       /sessions [delete]
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromHeader(r)
	if !ok {
		response.Unauthorized(w, "missing or malformed authorization header")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		response.InternalError(w, "failed to log out")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{})
}
