package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()
	secret := []byte("test-secret")

	token, exp, err := SignSessionToken(secret, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), exp, time.Minute)

	assert.True(t, ValidateSessionToken(secret, token))
}

func TestSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := SignSessionToken([]byte("secret-a"), time.Now())
	require.NoError(t, err)

	assert.False(t, ValidateSessionToken([]byte("secret-b"), token))
}

func TestSessionToken_Expired(t *testing.T) {
	t.Parallel()
	secret := []byte("test-secret")

	token, _, err := SignSessionToken(secret, time.Now().Add(-2*SessionTTL))
	require.NoError(t, err)

	assert.False(t, ValidateSessionToken(secret, token))
}

func TestSessionToken_Garbage(t *testing.T) {
	t.Parallel()
	assert.False(t, ValidateSessionToken([]byte("secret"), "not-a-token"))
}
