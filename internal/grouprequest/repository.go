package grouprequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles group request persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group request repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a PENDING request. The unique index on (user_id, group_id)
// closes the race between two concurrent requests from the same user; a
// violation is reported as ErrDuplicateRequest just like the pre-check.
func (r *Repository) Create(ctx context.Context, groupID, userID int64) (*GroupRequest, error) {
	query := `
		INSERT INTO groups_requests (user_id, group_id, status)
		VALUES ($1, $2, 'PENDING')
		RETURNING id, user_id, group_id, status, created_at, updated_at
	`

	request := &GroupRequest{}
	err := r.db.QueryRowContext(ctx, query, userID, groupID).Scan(
		&request.ID,
		&request.UserID,
		&request.GroupID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create group request: %w", err)
	}

	return request, nil
}

// Find retrieves the live request of a user for a group, in any status
func (r *Repository) Find(ctx context.Context, groupID, userID int64) (*GroupRequest, error) {
	query := `
		SELECT id, user_id, group_id, status, created_at, updated_at
		FROM groups_requests
		WHERE group_id = $1 AND user_id = $2
	`

	request := &GroupRequest{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&request.ID,
		&request.UserID,
		&request.GroupID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find group request: %w", err)
	}

	return request, nil
}

// ListPendingByMaster retrieves the PENDING requests of a group, but only
// when the supplied master actually owns it; otherwise the result is empty
func (r *Repository) ListPendingByMaster(ctx context.Context, groupID, masterID int64) ([]*GroupRequest, error) {
	query := `
		SELECT gr.id, gr.user_id, gr.group_id, gr.status, gr.created_at, gr.updated_at,
		       u.id, u.username,
		       g.id, g.name, g.master
		FROM groups_requests gr
		JOIN users u ON gr.user_id = u.id
		JOIN groups g ON gr.group_id = g.id
		WHERE gr.group_id = $1 AND g.master = $2 AND gr.status = 'PENDING'
		ORDER BY gr.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, masterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group requests: %w", err)
	}
	defer rows.Close()

	var requests []*GroupRequest
	for rows.Next() {
		request := &GroupRequest{User: &UserSummary{}, Group: &GroupSummary{}}
		if err := rows.Scan(
			&request.ID,
			&request.UserID,
			&request.GroupID,
			&request.Status,
			&request.CreatedAt,
			&request.UpdatedAt,
			&request.User.ID,
			&request.User.Username,
			&request.Group.ID,
			&request.Group.Name,
			&request.Group.Master,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// Accept transitions a PENDING request to ACCEPTED and attaches the
// membership in one transaction. A crash between the two statements rolls
// both back; a request that is missing or no longer PENDING yields
// ErrRequestNotFound.
func (r *Repository) Accept(ctx context.Context, groupID, requestID int64) (*GroupRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE groups_requests
		SET status = 'ACCEPTED', updated_at = now()
		WHERE id = $1 AND group_id = $2 AND status = 'PENDING'
		RETURNING id, user_id, group_id, status, created_at, updated_at
	`

	request := &GroupRequest{}
	err = tx.QueryRowContext(ctx, query, requestID, groupID).Scan(
		&request.ID,
		&request.UserID,
		&request.GroupID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to accept group request: %w", err)
	}

	attach := `
		INSERT INTO groups_users (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, attach, groupID, request.UserID); err != nil {
		return nil, fmt.Errorf("failed to attach membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return request, nil
}

// Delete removes a request (rejection)
func (r *Repository) Delete(ctx context.Context, groupID, requestID int64) error {
	query := `DELETE FROM groups_requests WHERE id = $1 AND group_id = $2`

	result, err := r.db.ExecContext(ctx, query, requestID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}
