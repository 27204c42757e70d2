// Package hash wraps bcrypt for the two secrets this service stores at
// rest: login passwords and refresh token strings. Hashing refresh tokens
// before storage means a leaked database does not hand out live sessions.
package hash

import "golang.org/x/crypto/bcrypt"

type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost. Cost 0 selects
// bcrypt.DefaultCost; tests pass bcrypt.MinCost to stay fast.
func New(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted digest. Two calls with the same input yield
// different outputs because bcrypt generates a fresh salt per call.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether candidate matches storedHash. A malformed or
// empty stored hash verifies false rather than erroring, so a corrupted
// record fails closed.
func (h *Hasher) Verify(storedHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}
