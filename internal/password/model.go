package password

import "time"

// ResetToken is the single live password-reset token of a user. Issuing a
// new one replaces the row; consuming it deletes the row.
type ResetToken struct {
	ID        int64     `json:"-"`
	UserID    int64     `json:"-"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
