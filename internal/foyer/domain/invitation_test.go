package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvitationIdentifier(t *testing.T) {
	t.Parallel()

	id := InvitationIdentifier("new@example.com")
	require.Equal(t, "invitation:new@example.com", id)
	require.Equal(t, "new@example.com", EmailFromIdentifier(id))
}

func TestParseInvitationMetadata(t *testing.T) {
	t.Parallel()

	valid := InvitationMetadata{
		Name:      "Alice Johnson",
		Role:      RoleUser,
		InvitedBy: "01ADMIN",
		InvitedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("round trip", func(t *testing.T) {
		raw, err := valid.Encode()
		require.NoError(t, err)

		parsed, ok := ParseInvitationMetadata(raw)
		require.True(t, ok)
		require.Equal(t, valid, parsed)
	})

	t.Run("rejects corrupt blobs", func(t *testing.T) {
		for name, raw := range map[string]string{
			"not json":            `{{`,
			"wrong type for name": `{"name":42,"role":"USER","invitedBy":"01ADMIN","invitedAt":"2026-02-01T10:00:00Z"}`,
			"empty name":          `{"name":"  ","role":"USER","invitedBy":"01ADMIN","invitedAt":"2026-02-01T10:00:00Z"}`,
			"missing role":        `{"name":"Alice","invitedBy":"01ADMIN","invitedAt":"2026-02-01T10:00:00Z"}`,
			"unknown role":        `{"name":"Alice","role":"WIZARD","invitedBy":"01ADMIN","invitedAt":"2026-02-01T10:00:00Z"}`,
			"missing inviter":     `{"name":"Alice","role":"USER","invitedAt":"2026-02-01T10:00:00Z"}`,
			"bad timestamp":       `{"name":"Alice","role":"USER","invitedBy":"01ADMIN","invitedAt":"yesterday"}`,
		} {
			t.Run(name, func(t *testing.T) {
				_, ok := ParseInvitationMetadata(json.RawMessage(raw))
				require.False(t, ok)
			})
		}
	})
}

func TestVerificationRecordExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	rec := VerificationRecord{ExpiresAt: now}

	// Expiry is strict: a record expiring exactly now is already invalid.
	require.True(t, rec.Expired(now))
	require.True(t, rec.Expired(now.Add(time.Second)))
	require.False(t, rec.Expired(now.Add(-time.Second)))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, ok := ParseRole("ADMIN")
	require.True(t, ok)
	require.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("admin")
	require.False(t, ok)

	require.True(t, RoleUser.Valid())
	require.False(t, Role("GUEST").Valid())
}
