// Package token signs and verifies the compact HS256 tokens the session
// module issues. One Codec exists per secret; the process runs two, one
// for access tokens and one for refresh tokens, so possession of either
// secret does not let an attacker mint the other kind.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Payload is the claim set a token carries beyond the registered claims.
type Payload struct {
	Email string
	Name  string
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwtlib.RegisteredClaims
}

func (c *Claims) Payload() Payload {
	return Payload{Email: c.Email, Name: c.Name}
}

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL is the default lifetime tokens are signed with.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Sign issues a token with the codec's default TTL.
func (c *Codec) Sign(p Payload) (string, error) {
	return c.SignWithTTL(p, c.ttl)
}

// SignWithTTL issues a token expiring after the given lifetime. Refresh
// rotation uses this to carry the remaining lifetime of the token being
// replaced instead of the configured default.
func (c *Codec) SignWithTTL(p Payload, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify parses and validates a token string. Any failure, whether a bad
// signature, a foreign signing method, a garbled token, or a past expiry,
// comes back as ErrInvalidToken; callers have no reason to distinguish.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
