package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group
func (r *Repository) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (name, description, schedule, location, chronic, master)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, schedule, location, chronic, master, created_at, updated_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.Schedule, req.Location, req.Chronic, req.Master,
	).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Schedule,
		&group.Location,
		&group.Chronic,
		&group.Master,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID, without its player list
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT id, name, description, schedule, location, chronic, master, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Schedule,
		&group.Location,
		&group.Chronic,
		&group.Master,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// List retrieves groups matching the filter, in creation order, with their
// player lists and master projections populated
func (r *Repository) List(ctx context.Context, filter Filter) ([]*Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.schedule, g.location, g.chronic, g.master, g.created_at, g.updated_at
		FROM groups g
		WHERE ($1 = 0 OR EXISTS (
			SELECT 1 FROM groups_users gu
			WHERE gu.group_id = g.id AND gu.user_id = $1
		))
		AND ($2 = '' OR g.name ILIKE '%' || $2 || '%' OR g.description ILIKE '%' || $2 || '%')
		ORDER BY g.id
	`

	rows, err := r.db.QueryContext(ctx, query, filter.MemberID, filter.Term)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.Schedule,
			&group.Location,
			&group.Chronic,
			&group.Master,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	if err := r.loadPlayers(ctx, groups); err != nil {
		return nil, err
	}
	if err := r.loadMasters(ctx, groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// loadPlayers populates the player lists of all groups in one query
func (r *Repository) loadPlayers(ctx context.Context, groups []*Group) error {
	if len(groups) == 0 {
		return nil
	}

	ids := make([]int64, len(groups))
	byID := make(map[int64]*Group, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
		byID[g.ID] = g
	}

	query := `
		SELECT gu.group_id, u.id, u.username, u.email, u.avatar
		FROM groups_users gu
		JOIN users u ON gu.user_id = u.id
		WHERE gu.group_id = ANY($1)
		ORDER BY gu.id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID int64
		player := &Player{}
		if err := rows.Scan(&groupID, &player.ID, &player.Username, &player.Email, &player.Avatar); err != nil {
			return fmt.Errorf("failed to scan player: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Players = append(g.Players, player)
		}
	}
	return rows.Err()
}

// loadMasters populates the master user projections of all groups
func (r *Repository) loadMasters(ctx context.Context, groups []*Group) error {
	if len(groups) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(groups))
	seen := make(map[int64]bool, len(groups))
	for _, g := range groups {
		if !seen[g.Master] {
			seen[g.Master] = true
			ids = append(ids, g.Master)
		}
	}

	query := `
		SELECT id, username, email, avatar
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load masters: %w", err)
	}
	defer rows.Close()

	masters := make(map[int64]*Player, len(ids))
	for rows.Next() {
		player := &Player{}
		if err := rows.Scan(&player.ID, &player.Username, &player.Email, &player.Avatar); err != nil {
			return fmt.Errorf("failed to scan master: %w", err)
		}
		masters[player.ID] = player
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, g := range groups {
		g.MasterUser = masters[g.Master]
	}
	return nil
}

// Update merges the provided fields into an existing group
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    schedule = COALESCE($4, schedule),
		    location = COALESCE($5, location),
		    chronic = COALESCE($6, chronic),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, schedule, location, chronic, master, created_at, updated_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id,
		req.Name, req.Description, req.Schedule, req.Location, req.Chronic,
	).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Schedule,
		&group.Location,
		&group.Chronic,
		&group.Master,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// Delete removes a group. Memberships and requests go with it via the
// ON DELETE CASCADE foreign keys.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// AddPlayer attaches a user to a group. Attaching an existing player is a
// no-op.
func (r *Repository) AddPlayer(ctx context.Context, groupID, userID int64) error {
	query := `
		INSERT INTO groups_users (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to add player: %w", err)
	}

	return nil
}

// RemovePlayer detaches a user from a group. Removing a non-member is a
// no-op.
func (r *Repository) RemovePlayer(ctx context.Context, groupID, userID int64) error {
	query := `DELETE FROM groups_users WHERE group_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}

	return nil
}

// IsPlayer reports whether the user is currently a member of the group
func (r *Repository) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM groups_users WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return exists, nil
}

// GetPlayers retrieves the members of a group in join order
func (r *Repository) GetPlayers(ctx context.Context, groupID int64) ([]*Player, error) {
	query := `
		SELECT u.id, u.username, u.email, u.avatar
		FROM groups_users gu
		JOIN users u ON gu.user_id = u.id
		WHERE gu.group_id = $1
		ORDER BY gu.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		player := &Player{}
		if err := rows.Scan(&player.ID, &player.Username, &player.Email, &player.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
