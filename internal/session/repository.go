package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles bearer token persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new session repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a freshly issued token
func (r *Repository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) (*Token, error) {
	query := `
		INSERT INTO api_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, token, expires_at, created_at
	`

	t := &Token{}
	err := r.db.QueryRowContext(ctx, query, userID, token, expiresAt).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.ExpiresAt,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return t, nil
}

// GetByToken retrieves a stored token by its opaque value
func (r *Repository) GetByToken(ctx context.Context, token string) (*Token, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM api_tokens
		WHERE token = $1
	`

	t := &Token{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.ExpiresAt,
		&t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return t, nil
}

// Delete revokes a token. Deleting an unknown token is a no-op.
func (r *Repository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM api_tokens WHERE token = $1`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
