package session

import (
	"context"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
)

// UserDirectory is the narrow slice of user storage the session service
// needs. Implementations return domain.ErrNotFound for missing records
// and domain.ErrEmailTaken for duplicate registrations; everything else
// is treated as a storage outage.
type UserDirectory interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetPasswordHash stores a new login password hash.
	SetPasswordHash(ctx context.Context, email, hash string) error

	// SetRefreshHash overwrites the stored refresh token hash; an empty
	// hash clears it (no active session). Idempotent on absent users.
	SetRefreshHash(ctx context.Context, email, hash string) error

	// ReplaceRefreshHash swaps current for next only if current is still
	// the stored value, returning domain.ErrNotFound otherwise. Rotation
	// rides on this compare-and-swap: of two requests presenting the same
	// refresh token, whichever the store ranks second loses the swap.
	ReplaceRefreshHash(ctx context.Context, email, current, next string) error

	// UpdateProfile changes the mutable profile fields.
	UpdateProfile(ctx context.Context, email, name, locale string) error
}
