package grouprequest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rmaestri/roleplay/internal/group"
	"github.com/rmaestri/roleplay/pkg/middleware"
	"github.com/rmaestri/roleplay/pkg/response"
)

// Handler handles HTTP requests for the join-request workflow
type Handler struct {
	service *Service
}

// NewHandler creates a new group request handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for request endpoints, mounted under
// /groups/{groupID}/requests
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListForMaster)
	r.Post("/{requestID}/accept", h.Accept)
	r.Delete("/{requestID}", h.Reject)

	return r
}

// Create handles POST /groups/{groupID}/requests
// @Summary      Request to join a group
// @Description  File a PENDING join request for the authenticated user
// @Tags         group-requests
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Success      201 {object} map[string]GroupRequest
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Router       /groups/{groupID}/requests [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	request, err := h.service.Create(r.Context(), groupID, userID)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrDuplicateRequest):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrAlreadyMember):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "failed to create group request")
		}
		return
	}

	response.JSON(w, http.StatusCreated, map[string]*GroupRequest{"groupRequest": request})
}

// ListForMaster handles GET /groups/{groupID}/requests?master=
// @Summary      List pending requests for a master
// @Description  List the group's PENDING requests when the supplied master owns it
// @Tags         group-requests
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        master query int true "Master user ID"
// @Success      200 {object} map[string][]GroupRequest
// @Failure      422 {object} response.ErrorResponse
// @Router       /groups/{groupID}/requests [get]
func (h *Handler) ListForMaster(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	masterStr := r.URL.Query().Get("master")
	if masterStr == "" {
		response.UnprocessableEntity(w, "master query param is required")
		return
	}
	masterID, err := strconv.ParseInt(masterStr, 10, 64)
	if err != nil {
		response.UnprocessableEntity(w, "invalid master query param")
		return
	}

	requests, err := h.service.ListForMaster(r.Context(), groupID, masterID)
	if err != nil {
		response.InternalError(w, "failed to list group requests")
		return
	}
	if requests == nil {
		requests = []*GroupRequest{}
	}

	response.JSON(w, http.StatusOK, map[string][]*GroupRequest{"groupRequests": requests})
}

// Accept handles POST /groups/{groupID}/requests/{requestID}/accept
// @Summary      Accept a join request
// @Description  Transition the request to ACCEPTED and attach the membership
// @Tags         group-requests
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        requestID path int true "Request ID"
// @Success      200 {object} map[string]GroupRequest
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupID}/requests/{requestID}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	groupID, requestID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	request, err := h.service.Accept(r.Context(), groupID, requestID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) || errors.Is(err, ErrRequestNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "failed to accept group request")
		return
	}

	response.JSON(w, http.StatusOK, map[string]*GroupRequest{"groupRequest": request})
}

// Reject handles DELETE /groups/{groupID}/requests/{requestID}
// @Summary      Reject a join request
// @Description  Delete the request outright
// @Tags         group-requests
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        requestID path int true "Request ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupID}/requests/{requestID} [delete]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	groupID, requestID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Reject(r.Context(), groupID, requestID); err != nil {
		if errors.Is(err, group.ErrGroupNotFound) || errors.Is(err, ErrRequestNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "failed to reject group request")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{})
}

func (h *Handler) pathIDs(w http.ResponseWriter, r *http.Request) (groupID, requestID int64, ok bool) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return 0, 0, false
	}

	requestID, err = strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid request ID")
		return 0, 0, false
	}

	return groupID, requestID, true
}
