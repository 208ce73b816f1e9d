package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "asha@example.com", "user")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1", "a@example.com", "user")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewManager("other-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "user")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	_, err := m.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
