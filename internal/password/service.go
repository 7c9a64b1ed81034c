package password

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rmaestri/roleplay/internal/credentials"
	"github.com/rmaestri/roleplay/internal/mailer"
	"github.com/rmaestri/roleplay/internal/user"
)

// Common errors
var (
	ErrTokenNotFound = errors.New("reset token not found")
	ErrTokenExpired  = errors.New("token has expired")
)

const productName = "Roleplay"

// Store is the persistence surface the service depends on
type Store interface {
	Upsert(ctx context.Context, userID int64, token string) (*ResetToken, error)
	GetByToken(ctx context.Context, token string) (*ResetToken, error)
	Consume(ctx context.Context, token, hashedPassword string) error
}

// UserStore resolves the account behind a forgot-password request
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Service owns the reset-token lifecycle: issue/replace on forgot,
// expire after the TTL, consume exactly once on reset
type Service struct {
	store  Store
	users  UserStore
	mail   mailer.Mailer
	from   string
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new password service
func NewService(store Store, users UserStore, mail mailer.Mailer, from string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		users:  users,
		mail:   mail,
		from:   from,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Forgot issues a fresh reset token for the account, replacing any
// existing one, and mails the reset link. The send is fire-and-forget: a
// mail failure is logged, never surfaced, and never rolls back the token.
func (s *Service) Forgot(ctx context.Context, email, resetURLBase string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	token := uuid.NewString()
	if _, err := s.store.Upsert(ctx, u.ID, token); err != nil {
		return err
	}

	msg := mailer.BuildResetPasswordEmail(u.Email, s.from, mailer.ResetPasswordEmailData{
		ProductName: productName,
		Username:    u.Username,
		ResetURL:    resetURLBase + "?token=" + token,
	})
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.Warn("failed to send reset password mail",
			zap.String("email", u.Email),
			zap.Error(err),
		)
	}

	return nil
}

// Reset consumes the token and sets the new password. A token older than
// the TTL is expired; a token that was already consumed (or never existed)
// is not found, so replaying a reset fails.
func (s *Service) Reset(ctx context.Context, token, newPassword string) error {
	t, err := s.store.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTokenNotFound
	}

	if s.now().Sub(t.CreatedAt) > s.ttl {
		return ErrTokenExpired
	}

	hash, err := credentials.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.store.Consume(ctx, token, hash)
}
