package group

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrCannotRemoveMaster = errors.New("cannot remove master from group")
)

// Store is the persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, req *CreateGroupRequest) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	List(ctx context.Context, filter Filter) ([]*Group, error)
	Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error)
	Delete(ctx context.Context, id int64) error
	AddPlayer(ctx context.Context, groupID, userID int64) error
	RemovePlayer(ctx context.Context, groupID, userID int64) error
	IsPlayer(ctx context.Context, groupID, userID int64) (bool, error)
	GetPlayers(ctx context.Context, groupID int64) ([]*Player, error)
}

// Service handles group business logic
type Service struct {
	store Store
}

// NewService creates a new group service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create creates a new group and attaches the master as its first player
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	group, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddPlayer(ctx, group.ID, req.Master); err != nil {
		return nil, err
	}

	players, err := s.store.GetPlayers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Players = players

	return group, nil
}

// GetByID retrieves a group with its player list
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	players, err := s.store.GetPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Players = players

	return group, nil
}

// List retrieves groups matching the filter. With no constraints every
// group is returned; a member constraint and a term constraint compose as
// an intersection.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Group, error) {
	return s.store.List(ctx, filter)
}

// Update merges the provided free-text fields into the group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	group, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// Delete removes a group and all its memberships
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// RemovePlayer detaches a player from the group. The master can never be
// removed through this path; removing a non-member is a no-op.
func (s *Service) RemovePlayer(ctx context.Context, groupID, playerID int64) error {
	group, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	if playerID == group.Master {
		return ErrCannotRemoveMaster
	}

	return s.store.RemovePlayer(ctx, groupID, playerID)
}
