package password

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles reset token persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new password repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates the user's reset token, replacing any existing one. The
// unique index on user_id makes this a true replace under concurrency.
func (r *Repository) Upsert(ctx context.Context, userID int64, token string) (*ResetToken, error) {
	query := `
		INSERT INTO link_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token, created_at = now()
		RETURNING id, user_id, token, created_at
	`

	t := &ResetToken{}
	err := r.db.QueryRowContext(ctx, query, userID, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert reset token: %w", err)
	}

	return t, nil
}

// GetByToken retrieves a reset token by its opaque value
func (r *Repository) GetByToken(ctx context.Context, token string) (*ResetToken, error) {
	query := `
		SELECT id, user_id, token, created_at
		FROM link_tokens
		WHERE token = $1
	`

	t := &ResetToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return t, nil
}

// Consume deletes the token and sets the user's new password hash in one
// transaction. The DELETE is the claim: of two concurrent consumers only
// one sees a row, the other gets ErrTokenNotFound.
func (r *Repository) Consume(ctx context.Context, token, hashedPassword string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	claim := `DELETE FROM link_tokens WHERE token = $1 RETURNING user_id`
	if err := tx.QueryRowContext(ctx, claim, token).Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to claim reset token: %w", err)
	}

	update := `UPDATE users SET password = $2, updated_at = now() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
