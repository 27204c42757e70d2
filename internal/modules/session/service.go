package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/hash"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/token"
)

// Service owns the session lifecycle: credential verification, token
// issuance, refresh rotation, and revocation. It is stateless between
// calls; all durable state is the single refresh-token-hash field per
// user inside the directory.
type Service struct {
	users   UserDirectory
	hasher  *hash.Hasher
	access  *token.Codec
	refresh *token.Codec

	now func() time.Time
}

// RefreshResult carries the rotated pair plus the lifetime the new
// refresh token was actually issued with, so the transport can set a
// matching cookie Max-Age.
type RefreshResult struct {
	User       *PublicUser
	Tokens     TokenPair
	RefreshTTL time.Duration
}

func NewService(users UserDirectory, hasher *hash.Hasher, access, refresh *token.Codec) *Service {
	return &Service{
		users:   users,
		hasher:  hasher,
		access:  access,
		refresh: refresh,
		now:     time.Now,
	}
}

// AccessTTL exposes the configured access token lifetime for cookie
// issuance.
func (s *Service) AccessTTL() time.Duration {
	return s.access.TTL()
}

// RefreshTTL is the configured default refresh token lifetime, granted
// at sign-in. Rotations only ever shrink it.
func (s *Service) RefreshTTL() time.Duration {
	return s.refresh.TTL()
}

// Register creates an account with a hashed password and no active
// session. Fails with ErrEmailConflict on a duplicate email.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*PublicUser, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UUID:         uuid.NewString(),
		Email:        normalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, ErrEmailConflict
		}
		return nil, directoryError("create user", err)
	}

	return toPublicView(user)
}

// VerifyCredentials checks an email/password pair. An unknown email and
// a wrong password both come back as ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*PublicUser, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return toPublicView(user)
}

// SignIn issues an access/refresh pair for an already-verified user and
// records the refresh token's hash, atomically replacing any prior
// session: at most one refresh token is live per user.
func (s *Service) SignIn(ctx context.Context, user *PublicUser) (TokenPair, error) {
	payload := token.Payload{Email: user.Email, Name: user.Name}

	accessToken, err := s.access.Sign(payload)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.refresh.Sign(payload)
	if err != nil {
		return TokenPair{}, err
	}

	refreshHash, err := s.hasher.Hash(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.users.SetRefreshHash(ctx, user.Email, refreshHash); err != nil {
		return TokenPair{}, directoryError("store refresh hash", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a still-valid refresh token for a new pair and
// invalidates the presented one. The new refresh token inherits the
// remaining lifetime of the old one rather than the configured default,
// so a chain of rotations can never push the session past the expiry
// granted at sign-in.
func (s *Service) Refresh(ctx context.Context, presented string) (*RefreshResult, error) {
	claims, err := s.refresh.Verify(presented)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.findUser(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if !user.HasActiveSession() {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.RefreshTokenHash, presented) {
		// Well-signed but superseded or revoked.
		return nil, ErrInvalidCredentials
	}

	remaining := claims.ExpiresAt.Time.Sub(s.now()).Truncate(time.Second)
	// Clamp against clock skew between issuance and verification: never
	// negative, never beyond the configured default.
	if remaining > s.refresh.TTL() {
		remaining = s.refresh.TTL()
	}
	if remaining <= 0 {
		return nil, ErrInvalidToken
	}

	payload := claims.Payload()
	accessToken, err := s.access.Sign(payload)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.SignWithTTL(payload, remaining)
	if err != nil {
		return nil, err
	}

	refreshHash, err := s.hasher.Hash(refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.users.ReplaceRefreshHash(ctx, user.Email, user.RefreshTokenHash, refreshHash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A concurrent rotation or sign-out won the swap.
			return nil, ErrInvalidCredentials
		}
		return nil, directoryError("rotate refresh hash", err)
	}

	view, err := toPublicView(user)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{
		User:       view,
		Tokens:     TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
		RefreshTTL: remaining,
	}, nil
}

// SignOut clears the stored refresh hash, revoking any outstanding
// refresh token. Idempotent.
func (s *Service) SignOut(ctx context.Context, email string) error {
	if err := s.users.SetRefreshHash(ctx, normalizeEmail(email), ""); err != nil {
		return directoryError("clear refresh hash", err)
	}
	return nil
}

// ChangePassword verifies the old password, stores a hash of the new
// one, and revokes all outstanding sessions.
func (s *Service) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if newPassword == oldPassword {
		return ErrSamePassword
	}

	if _, err := s.VerifyCredentials(ctx, email, oldPassword); err != nil {
		return err
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	email = normalizeEmail(email)
	if err := s.users.SetPasswordHash(ctx, email, newHash); err != nil {
		return directoryError("store password hash", err)
	}
	if err := s.users.SetRefreshHash(ctx, email, ""); err != nil {
		return directoryError("clear refresh hash", err)
	}
	return nil
}

// CurrentUser returns the sanitized public view for a verified principal.
func (s *Service) CurrentUser(ctx context.Context, email string) (*PublicUser, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return toPublicView(user)
}

// Identity returns the internal view, including the numeric id the CRUD
// modules scope their rows by. Server-side use only.
func (s *Service) Identity(ctx context.Context, email string) (*InternalUser, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return toInternalView(user)
}

// UpdateProfile changes name and locale, returning the fresh public view.
func (s *Service) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (*PublicUser, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if req.Name != "" {
		name = strings.TrimSpace(req.Name)
	}
	locale := user.Locale
	if req.Locale != "" {
		locale = req.Locale
	}

	if err := s.users.UpdateProfile(ctx, user.Email, name, locale); err != nil {
		return nil, directoryError("update profile", err)
	}

	user.Name = name
	user.Locale = locale
	return toPublicView(user)
}

func (s *Service) findUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, directoryError("find user", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func directoryError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDirectoryUnavailable, err)
}
