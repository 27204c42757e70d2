package domain

import "time"

// User is an operator account for a player device.
//
// Security notes:
//   - PasswordHash and RefreshTokenHash never leave this process; the session
//     module projects users into sanitized views before anything is returned
//     to a handler.
//   - RefreshTokenHash is the bcrypt hash of the most recently issued refresh
//     token, or empty when the user has no active session. It is overwritten
//     on every sign-in and refresh, and cleared on sign-out and password
//     change, so at most one refresh token is live per user.
type User struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UUID             string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	Name             string    `json:"name"`
	Locale           string    `json:"locale,omitempty"`
	PasswordHash     string    `json:"-" gorm:"not null"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasActiveSession reports whether a refresh token is currently outstanding.
func (u *User) HasActiveSession() bool {
	return u.RefreshTokenHash != ""
}
