package group

import "time"

// Group represents a tabletop session group. Master is the owning user;
// the master is always also a player.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	Location    string    `json:"location"`
	Chronic     string    `json:"chronic"`
	Master      int64     `json:"master"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated from groups_users / users
	Players    []*Player `json:"players,omitempty"`
	MasterUser *Player   `json:"masterUser,omitempty"`
}

// Player is the user projection carried inside group payloads
type Player struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar,omitempty"`
}
