package service

import (
	"context"
	"testing"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/internal/foyer/store"
	"github.com/foyerhq/foyer/internal/foyer/store/drivers/sqlite"
	"github.com/foyerhq/foyer/pkg/cryptox"
	"github.com/foyerhq/foyer/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestService(t *testing.T) (*InvitationService, store.Store) {
	t.Helper()

	st := newTestStore(t)
	return &InvitationService{Store: st}, st
}

// seedInvitation writes a raw verification record, bypassing the service, so
// tests can control expiry and metadata shape directly.
func seedInvitation(
	t *testing.T,
	st store.Store,
	email string,
	metadata []byte,
	createdAt time.Time,
	expiresAt time.Time,
) string {
	t.Helper()

	token := cryptox.MustGenerateToken(cryptox.TokenSize256)
	rec := domain.VerificationRecord{
		ID:         idx.NewAt(createdAt).String(),
		Identifier: domain.InvitationIdentifier(email),
		TokenHash:  cryptox.FingerprintToken(token),
		Metadata:   metadata,
		ExpiresAt:  expiresAt,
		CreatedAt:  createdAt,
	}
	require.NoError(t, st.Verifications().CreateVerification(context.Background(), rec))
	return token
}

func validMetadata(t *testing.T, name string, invitedBy string) []byte {
	t.Helper()

	raw, err := domain.InvitationMetadata{
		Name:      name,
		Role:      domain.RoleUser,
		InvitedBy: invitedBy,
		InvitedAt: time.Now().UTC(),
	}.Encode()
	require.NoError(t, err)
	return raw
}
