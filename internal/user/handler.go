package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rmaestri/roleplay/pkg/middleware"
	"github.com/rmaestri/roleplay/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /users
// @Summary      Register a new user
// @Description  Create a user with unique email and username
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User registration request"
// @Success      201 {object} map[string]User
// @Failure      409 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailInUse) || errors.Is(err, ErrUsernameInUse) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "failed to create user")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]*User{"user": user})
}

// Update handles PUT /users/{id}
// @Summary      Update a user's profile
// @Description  Set a new email and password, and optionally a new avatar
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "Profile update request"
// @Success      200 {object} map[string]User
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	// Users may only update their own profile.
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok || callerID != id {
		response.Forbidden(w, "cannot update another user")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrEmailInUse) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "failed to update user")
		return
	}

	response.JSON(w, http.StatusOK, map[string]*User{"user": user})
}
