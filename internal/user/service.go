package user

import (
	"context"
	"errors"

	"github.com/rmaestri/roleplay/internal/credentials"
)

// Common errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailInUse    = errors.New("email already in use")
	ErrUsernameInUse = errors.New("username already in use")
)

// Store is the persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, username, email, hashedPassword string, avatar *string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id int64, email, hashedPassword string, avatar *string) (*User, error)
}

// Service handles user business logic
type Service struct {
	store Store
}

// NewService creates a new user service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new user with a bcrypt-hashed password. Email and
// username must both be unused.
func (s *Service) Register(ctx context.Context, req *CreateUserRequest) (*User, error) {
	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	existing, err = s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameInUse
	}

	hash, err := credentials.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, req.Username, req.Email, hash, req.Avatar)
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update sets a new email and password, and the avatar when provided
func (s *Service) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	hash, err := credentials.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Update(ctx, id, req.Email, hash, req.Avatar)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
