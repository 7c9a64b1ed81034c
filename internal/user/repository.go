package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user with an already-hashed password. A concurrent
// registration racing past the service-level checks surfaces here as a
// unique violation and is mapped to the same sentinels.
func (r *Repository) Create(ctx context.Context, username, email, hashedPassword string, avatar *string) (*User, error) {
	query := `
		INSERT INTO users (username, email, password, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password, avatar, created_at, updated_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username, email, hashedPassword, avatar).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email = $1", email)
}

// GetByUsername retrieves a user by their username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *Repository) getBy(ctx context.Context, where string, arg interface{}) (*User, error) {
	query := `
		SELECT id, username, email, password, avatar, created_at, updated_at
		FROM users
		WHERE ` + where

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Update overwrites email and password and, when provided, the avatar
func (r *Repository) Update(ctx context.Context, id int64, email, hashedPassword string, avatar *string) (*User, error) {
	query := `
		UPDATE users
		SET email = $2,
		    password = $3,
		    avatar = COALESCE($4, avatar),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, username, email, password, avatar, created_at, updated_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id, email, hashedPassword, avatar).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// mapUniqueViolation translates Postgres unique violations on the users
// table into the package sentinels, keyed by constraint name.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch pqErr.Constraint {
	case "users_email_key":
		return ErrEmailInUse
	case "users_username_key":
		return ErrUsernameInUse
	}
	return nil
}
