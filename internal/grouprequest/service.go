package grouprequest

import (
	"context"
	"errors"

	"github.com/rmaestri/roleplay/internal/group"
)

// Common errors
var (
	ErrRequestNotFound  = errors.New("group request not found")
	ErrDuplicateRequest = errors.New("group request already exists")
	ErrAlreadyMember    = errors.New("user is already in the group")
)

// Store is the persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, groupID, userID int64) (*GroupRequest, error)
	Find(ctx context.Context, groupID, userID int64) (*GroupRequest, error)
	ListPendingByMaster(ctx context.Context, groupID, masterID int64) ([]*GroupRequest, error)
	Accept(ctx context.Context, groupID, requestID int64) (*GroupRequest, error)
	Delete(ctx context.Context, groupID, requestID int64) error
}

// GroupStore resolves groups and memberships for the workflow's guards
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*group.Group, error)
	IsPlayer(ctx context.Context, groupID, userID int64) (bool, error)
}

// Service governs the join-request workflow: PENDING requests are either
// accepted (membership created) or rejected (deleted)
type Service struct {
	store  Store
	groups GroupStore
}

// NewService creates a new group request service
func NewService(store Store, groups GroupStore) *Service {
	return &Service{store: store, groups: groups}
}

// Create files a PENDING join request for the user. A user with a live
// request gets a conflict; a user already in the group cannot request at
// all, regardless of prior request history.
func (s *Service) Create(ctx context.Context, groupID, userID int64) (*GroupRequest, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	existing, err := s.store.Find(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	member, err := s.groups.IsPlayer(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, ErrAlreadyMember
	}

	return s.store.Create(ctx, groupID, userID)
}

// ListForMaster retrieves the group's PENDING requests when masterID owns
// the group. A mismatched master yields an empty list, not an error.
func (s *Service) ListForMaster(ctx context.Context, groupID, masterID int64) ([]*GroupRequest, error) {
	return s.store.ListPendingByMaster(ctx, groupID, masterID)
}

// Accept transitions the request to ACCEPTED and creates the membership.
// Accepting twice yields ErrRequestNotFound: the second call finds no
// PENDING row to claim.
func (s *Service) Accept(ctx context.Context, groupID, requestID int64) (*GroupRequest, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	return s.store.Accept(ctx, groupID, requestID)
}

// Reject deletes the request outright
func (s *Service) Reject(ctx context.Context, groupID, requestID int64) error {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return group.ErrGroupNotFound
	}

	return s.store.Delete(ctx, groupID, requestID)
}
