package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("returns hex of requested size", func(t *testing.T) {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		require.Len(t, token, TokenSize256*2)

		raw, err := hex.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, TokenSize256)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)

		_, err = GenerateToken(-8)
		require.Error(t, err)
	})

	t.Run("successive tokens differ", func(t *testing.T) {
		a := MustGenerateToken(TokenSize128)
		b := MustGenerateToken(TokenSize128)
		require.NotEqual(t, a, b)
	})
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, FingerprintToken("secret"), FingerprintToken("secret"))
	})

	t.Run("distinct inputs produce distinct fingerprints", func(t *testing.T) {
		require.NotEqual(t, FingerprintToken("secret"), FingerprintToken("secret2"))
	})

	t.Run("fingerprint never equals the token", func(t *testing.T) {
		token := MustGenerateToken(TokenSize256)
		require.NotEqual(t, token, FingerprintToken(token))
	})
}
