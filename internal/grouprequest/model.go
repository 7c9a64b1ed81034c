package grouprequest

import "time"

// Status represents the state of a join request. There is no REJECTED
// state: rejection deletes the row outright so a later re-request is not
// blocked by the uniqueness constraint.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
)

// GroupRequest represents a user's ask to join a group
type GroupRequest struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	GroupID   int64     `json:"groupId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated from JOINs on listings
	User  *UserSummary  `json:"user,omitempty"`
	Group *GroupSummary `json:"group,omitempty"`
}

// UserSummary is the requesting user's projection in listings
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GroupSummary is the target group's projection in listings
type GroupSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Master int64  `json:"master"`
}
