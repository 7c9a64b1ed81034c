package session

import (
	"context"
	"errors"
	"time"

	"github.com/rmaestri/roleplay/internal/credentials"
	"github.com/rmaestri/roleplay/internal/user"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Store is the token persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) (*Token, error)
	GetByToken(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}

// UserStore resolves credentials against the user records
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Service issues, validates and revokes bearer tokens
type Service struct {
	store Store
	users UserStore
	ttl   time.Duration
	now   func() time.Time
}

// NewService creates a new session service
func NewService(store Store, users UserStore, ttl time.Duration) *Service {
	return &Service{
		store: store,
		users: users,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Login verifies the credentials and issues a fresh bearer token
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *Token, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !credentials.VerifyPassword(password, u.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	opaque, err := credentials.NewToken()
	if err != nil {
		return nil, nil, err
	}

	token, err := s.store.Create(ctx, u.ID, opaque, s.now().Add(s.ttl))
	if err != nil {
		return nil, nil, err
	}

	return u, token, nil
}

// Authenticate resolves a bearer token to a user ID. Expired tokens are
// revoked on sight.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	t, err := s.store.GetByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, ErrInvalidToken
	}
	if s.now().After(t.ExpiresAt) {
		_ = s.store.Delete(ctx, token)
		return 0, ErrInvalidToken
	}
	return t.UserID, nil
}

// Logout revokes the presented token
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}
