package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()

	h := &HS256{Secret: []byte("test-secret"), Issuer: "foyer-test"}

	raw, err := h.Sign("01TESTUSER", []string{"admin:read", "admin:write"}, time.Minute)
	require.NoError(t, err)

	claims, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "01TESTUSER", claims.Subject)
	require.Equal(t, "foyer-test", claims.Issuer)
	require.Equal(t, []string{"admin:read", "admin:write"}, claims.Scopes)
	require.True(t, claims.HasScope("admin:write"))
	require.False(t, claims.HasScope("profile:read"))
	require.NoError(t, claims.ValidateExpiry())
}

func TestHS256RejectsBadTokens(t *testing.T) {
	t.Parallel()

	h := &HS256{Secret: []byte("test-secret"), Issuer: "foyer-test"}

	t.Run("wrong secret", func(t *testing.T) {
		other := &HS256{Secret: []byte("other-secret"), Issuer: "foyer-test"}
		raw, err := other.Sign("user", nil, time.Minute)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := &HS256{Secret: []byte("test-secret"), Issuer: "someone-else"}
		raw, err := other.Sign("user", nil, time.Minute)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		raw, err := h.Sign("user", nil, -time.Minute)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.Error(t, err)
	})
}
