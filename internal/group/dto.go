package group

import "errors"

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Chronic     string `json:"chronic" validate:"required"`
	Master      int64  `json:"master" validate:"required"`
}

// Validate checks the fields the core cannot assume were pre-validated
func (r *CreateGroupRequest) Validate() error {
	if r.Name == "" || r.Description == "" || r.Schedule == "" ||
		r.Location == "" || r.Chronic == "" || r.Master == 0 {
		return errors.New("name, description, schedule, location, chronic and master are required")
	}
	return nil
}

// UpdateGroupRequest represents a partial update. Master reassignment is
// not supported through this path.
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Schedule    *string `json:"schedule,omitempty"`
	Location    *string `json:"location,omitempty"`
	Chronic     *string `json:"chronic,omitempty"`
}

// Filter narrows a group listing. Zero values mean "no constraint".
type Filter struct {
	// MemberID keeps only groups the user currently plays in.
	MemberID int64
	// Term keeps only groups whose name or description contains the term,
	// case-insensitively.
	Term string
}
