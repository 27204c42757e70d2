package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	codec := New("unit-test-secret", 15*time.Minute)

	signed, err := codec.Sign(Payload{Email: "olivia@example.com", Name: "Olivia"})
	require.NoError(t, err)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "olivia@example.com", claims.Email)
	assert.Equal(t, "Olivia", claims.Name)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestSignWithTTL(t *testing.T) {
	codec := New("unit-test-secret", time.Hour)

	signed, err := codec.SignWithTTL(Payload{Email: "olivia@example.com"}, 3*time.Minute)
	require.NoError(t, err)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(3*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := New("secret-one", time.Minute).Sign(Payload{Email: "olivia@example.com"})
	require.NoError(t, err)

	_, err = New("secret-two", time.Minute).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	codec := New("unit-test-secret", time.Minute)

	signed, err := codec.SignWithTTL(Payload{Email: "olivia@example.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := New("unit-test-secret", time.Minute)

	for _, tokenStr := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := codec.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenStr)
	}
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	// alg=none with an empty signature segment must not pass as valid.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJlbWFpbCI6Im9saXZpYUBleGFtcGxlLmNvbSJ9."
	_, err := New("unit-test-secret", time.Minute).Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
