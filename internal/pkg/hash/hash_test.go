package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashIsSaltedPerCall(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	second, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify(first, "correct horse battery staple"))
	assert.True(t, h.Verify(second, "correct horse battery staple"))
}

func TestVerifyRejectsWrongCandidate(t *testing.T) {
	h := New(bcrypt.MinCost)

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.False(t, h.Verify(digest, "incorrect horse"))
	assert.False(t, h.Verify(digest, ""))
}

func TestVerifyFailsClosedOnMalformedHash(t *testing.T) {
	h := New(bcrypt.MinCost)

	assert.False(t, h.Verify("", "anything"))
	assert.False(t, h.Verify("not-a-bcrypt-digest", "anything"))
	assert.False(t, h.Verify("plaintext-stored-by-mistake", "plaintext-stored-by-mistake"))
}

func TestZeroCostFallsBackToDefault(t *testing.T) {
	h := New(0)

	digest, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
