package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/internal/foyer/store"
	"github.com/foyerhq/foyer/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

var pepperOnce sync.Once

// Password hashing depends on a process-wide pepper file; point it at a
// throwaway location exactly once for the whole package.
func setupPepper(t *testing.T) {
	t.Helper()
	pepperOnce.Do(func() {
		cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	})
}

func TestAcceptCreatesUserAndConsumesInvitation(t *testing.T) {
	setupPepper(t)
	ctx := context.Background()
	svc, st := newTestService(t)

	raw, err := domain.InvitationMetadata{
		Name:      "New Member",
		Role:      domain.RoleAdmin,
		InvitedBy: "01ADMIN",
		InvitedAt: time.Now().UTC(),
	}.Encode()
	require.NoError(t, err)
	token := seedInvitation(t, st, "new@example.com", raw,
		time.Now(), time.Now().Add(24*time.Hour))

	user, err := svc.Accept(ctx, "New@Example.com", token, "s3cret-enough")
	require.NoError(t, err)

	require.Equal(t, "new@example.com", user.Email)
	require.Equal(t, "New Member", user.Name)
	require.Equal(t, domain.RoleAdmin, user.Role)
	require.NotEmpty(t, user.ID)

	// The stored hash verifies against the chosen password and nothing else.
	stored, err := st.Users().GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword("s3cret-enough", stored.PasswordHash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong", stored.PasswordHash), cryptox.ErrPasswordMismatch)

	// Acceptance consumes every invitation record for the email.
	_, err = st.Verifications().GetLatestVerification(ctx, domain.InvitationIdentifier("new@example.com"))
	require.ErrorIs(t, err, store.ErrNotFound)
	require.False(t, svc.Validate(ctx, "new@example.com", token))
}

func TestAcceptRejectsBadTokens(t *testing.T) {
	setupPepper(t)
	ctx := context.Background()
	svc, st := newTestService(t)

	seedInvitation(t, st, "pending@example.com", validMetadata(t, "Pending", "01ADMIN"),
		time.Now(), time.Now().Add(24*time.Hour))
	expiredToken := seedInvitation(t, st, "stale@example.com", validMetadata(t, "Stale", "01ADMIN"),
		time.Now().Add(-8*24*time.Hour), time.Now().Add(-24*time.Hour))
	corruptToken := seedInvitation(t, st, "garbled@example.com", []byte(`{"name":`),
		time.Now(), time.Now().Add(24*time.Hour))

	cases := []struct {
		name   string
		email  string
		secret string
	}{
		{"wrong secret", "pending@example.com", cryptox.MustGenerateToken(cryptox.TokenSize256)},
		{"unknown email", "ghost@example.com", cryptox.MustGenerateToken(cryptox.TokenSize256)},
		{"expired invitation", "stale@example.com", expiredToken},
		{"corrupt metadata", "garbled@example.com", corruptToken},
		{"malformed email", "not-an-email", "whatever"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Accept(ctx, tc.email, tc.secret, "s3cret-enough")
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	// None of the failures consumed the live invitation.
	_, err := st.Verifications().GetLatestVerification(ctx, domain.InvitationIdentifier("pending@example.com"))
	require.NoError(t, err)
}

func TestAcceptRejectsShortPassword(t *testing.T) {
	setupPepper(t)
	ctx := context.Background()
	svc, st := newTestService(t)

	token := seedInvitation(t, st, "short@example.com", validMetadata(t, "Short", "01ADMIN"),
		time.Now(), time.Now().Add(24*time.Hour))

	_, err := svc.Accept(ctx, "short@example.com", token, "seven77")
	require.ErrorIs(t, err, ErrPasswordTooShort)

	// The invitation survives a rejected attempt.
	require.True(t, svc.Validate(ctx, "short@example.com", token))
}

func TestAcceptRejectsAlreadyRegisteredEmail(t *testing.T) {
	setupPepper(t)
	ctx := context.Background()
	svc, st := newTestService(t)

	token := seedInvitation(t, st, "taken@example.com", validMetadata(t, "Taken", "01ADMIN"),
		time.Now(), time.Now().Add(24*time.Hour))

	_, err := svc.Accept(ctx, "taken@example.com", token, "first-password")
	require.NoError(t, err)

	// A second acceptance fails on the token, which was consumed.
	_, err = svc.Accept(ctx, "taken@example.com", token, "second-password")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Even with a fresh invitation, the registered email blocks signup.
	fresh := seedInvitation(t, st, "taken@example.com", validMetadata(t, "Taken", "01ADMIN"),
		time.Now(), time.Now().Add(24*time.Hour))
	_, err = svc.Accept(ctx, "taken@example.com", fresh, "second-password")
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}
