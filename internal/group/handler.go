package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rmaestri/roleplay/pkg/middleware"
	"github.com/rmaestri/roleplay/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /groups
// @Summary      List groups
// @Description  List groups, optionally filtered by member and/or search term
// @Tags         groups
// @Produce      json
// @Param        user query int false "Keep only groups this user plays in"
// @Param        term query string false "Case-insensitive name/description search"
// @Success      200 {object} map[string][]Group
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var filter Filter

	if userStr := r.URL.Query().Get("user"); userStr != "" {
		userID, err := strconv.ParseInt(userStr, 10, 64)
		if err != nil {
			response.BadRequest(w, "invalid user filter")
			return
		}
		filter.MemberID = userID
	}
	filter.Term = r.URL.Query().Get("term")

	groups, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w, "failed to list groups")
		return
	}
	if groups == nil {
		groups = []*Group{}
	}

	response.JSON(w, http.StatusOK, map[string][]*Group{"groups": groups})
}

// Create handles POST /groups
// @Summary      Create a group
// @Description  Create a group; the master joins as its first player
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} map[string]Group
// @Failure      422 {object} response.ErrorResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	group, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]*Group{"group": group})
}

// Update handles PATCH /groups/{groupID}
// @Summary      Update a group
// @Description  Merge the provided free-text fields; only the master may update
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        request body UpdateGroupRequest true "Fields to update"
// @Success      200 {object} map[string]Group
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupID} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	if !h.authorizeMaster(w, r, id) {
		return
	}

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.UnprocessableEntity(w, "invalid request body")
		return
	}

	group, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "failed to update group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]*Group{"group": group})
}

// Delete handles DELETE /groups/{groupID}
// @Summary      Delete a group
// @Description  Delete a group and all its memberships; only the master may delete
// @Tags         groups
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Success      200 {object} map[string]string
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	if !h.authorizeMaster(w, r, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "failed to delete group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{})
}

// RemovePlayer handles DELETE /groups/{groupID}/players/{playerID}
// @Summary      Remove a player from a group
// @Description  Detach a player; the master cannot be removed
// @Tags         groups
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        playerID path int true "Player user ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupID}/players/{playerID} [delete]
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	playerID, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid player ID")
		return
	}

	if err := h.service.RemovePlayer(r.Context(), groupID, playerID); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrCannotRemoveMaster) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "failed to remove player")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{})
}

// authorizeMaster rejects callers that are not the group's master. The
// group is looked up first so an unknown group still surfaces as 404.
func (h *Handler) authorizeMaster(w http.ResponseWriter, r *http.Request, groupID int64) bool {
	group, err := h.service.GetByID(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return false
		}
		response.InternalError(w, "failed to get group")
		return false
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok || callerID != group.Master {
		response.Forbidden(w, "only the group master may do this")
		return false
	}

	return true
}
