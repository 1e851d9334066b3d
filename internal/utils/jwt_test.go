package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("test-secret", 9, "ADMIN", 15)
	require.NoError(t, err)

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(9), claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])

	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err, "wrong secret must not verify")
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(14)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	other, err := NewRefreshToken(14)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)

	// Hashing is deterministic and never exposes the raw token.
	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
	assert.NotEqual(t, rt.Raw, HashRefreshRaw(rt.Raw))
	assert.Len(t, HashRefreshRaw(rt.Raw), 64)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter2hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter2hunter3"))
}
