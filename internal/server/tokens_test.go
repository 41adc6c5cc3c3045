package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc, err := NewTokenService("0123456789abcdef", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue("session-1")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.GetSessionID())
	assert.Equal(t, "session-1", claims.Subject)
}

func TestTokenService_Rejects(t *testing.T) {
	svc, err := NewTokenService("0123456789abcdef", time.Hour)
	require.NoError(t, err)
	token, err := svc.Issue("session-1")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := svc.Validate("")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed")
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("fedcba9876543210", time.Hour)
		require.NoError(t, err)
		_, err = other.Validate(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "signature")
	})

	t.Run("expired", func(t *testing.T) {
		later := *svc
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Validate(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})
}

func TestNewTokenService_InvalidConfig(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService("secret", 0)
	assert.Error(t, err)
}
