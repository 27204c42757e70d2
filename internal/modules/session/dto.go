package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty" binding:"omitempty,min=2"`
	Locale string `json:"locale,omitempty" binding:"omitempty,bcp47_language_tag"`
}

// PublicUser is the projection safe to hand to API clients: no hashes
// and no internal numeric id.
type PublicUser struct {
	UUID   string `json:"uuid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Locale string `json:"locale,omitempty"`
}

// InternalUser additionally carries the numeric id other modules use as
// a foreign key. Same trust boundary only; still no hashes.
type InternalUser struct {
	ID     int64  `json:"id"`
	UUID   string `json:"uuid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Locale string `json:"locale,omitempty"`
}

// TokenPair is what a successful sign-in or refresh returns; each token
// is a compact signed string destined for a cookie.
type TokenPair struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

func toPublicView(u *domain.User) (*PublicUser, error) {
	view := &PublicUser{
		UUID:   u.UUID,
		Email:  u.Email,
		Name:   u.Name,
		Locale: u.Locale,
	}
	if err := assertSanitized(view, u); err != nil {
		return nil, err
	}
	return view, nil
}

func toInternalView(u *domain.User) (*InternalUser, error) {
	view := &InternalUser{
		ID:     u.ID,
		UUID:   u.UUID,
		Email:  u.Email,
		Name:   u.Name,
		Locale: u.Locale,
	}
	if err := assertSanitized(view, u); err != nil {
		return nil, err
	}
	return view, nil
}

// assertSanitized re-checks at runtime, under serialization, that a view
// leaks neither hash field nor hash value. The struct types already omit
// the fields; this guards against a refactor or library change quietly
// re-including them.
func assertSanitized(view any, record *domain.User) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal sanitized view: %w", err)
	}

	for _, key := range [][]byte{
		[]byte(`"passwordHash"`),
		[]byte(`"password_hash"`),
		[]byte(`"refreshTokenHash"`),
		[]byte(`"refresh_token_hash"`),
	} {
		if bytes.Contains(raw, key) {
			return fmt.Errorf("sanitized view contains sensitive key %s", key)
		}
	}

	for _, secret := range []string{record.PasswordHash, record.RefreshTokenHash} {
		if secret != "" && bytes.Contains(raw, []byte(secret)) {
			return fmt.Errorf("sanitized view contains sensitive value")
		}
	}

	return nil
}
