package service

import (
	"context"
	"testing"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedPending(t *testing.T, svc *InvitationService, email, name string, invitedBy string) {
	t.Helper()
	_, err := svc.Issue(context.Background(), email, name, domain.RoleUser, invitedBy)
	require.NoError(t, err)
}

func emails(items []domain.PendingInvitation) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Email)
	}
	return out
}

func names(items []domain.PendingInvitation) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestListPendingSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	seedPending(t, svc, "alice@example.com", "Alice Johnson", "01ADMIN")
	seedPending(t, svc, "bob@example.com", "Bob Smith", "01ADMIN")

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{Search: "ALI"})
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		require.Equal(t, []string{"alice@example.com"}, emails(res.Items))
	})

	t.Run("matches on email as well as name", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{Search: "bob@"})
		require.NoError(t, err)
		require.Equal(t, []string{"bob@example.com"}, emails(res.Items))
	})

	t.Run("substring, not prefix", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{Search: "johnson"})
		require.NoError(t, err)
		require.Equal(t, []string{"alice@example.com"}, emails(res.Items))
	})

	t.Run("no match yields empty page, not an error", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{Search: "zebra"})
		require.NoError(t, err)
		require.Zero(t, res.Total)
		require.Empty(t, res.Items)
	})
}

func TestListPendingExcludesExpiredAndCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newTestService(t)

	seedPending(t, svc, "live1@example.com", "Live One", "01ADMIN")
	seedPending(t, svc, "live2@example.com", "Live Two", "01ADMIN")
	seedPending(t, svc, "live3@example.com", "Live Three", "01ADMIN")

	seedInvitation(t, st, "dead1@example.com", validMetadata(t, "Dead One", "01ADMIN"),
		time.Now().Add(-8*24*time.Hour), time.Now().Add(-24*time.Hour))
	seedInvitation(t, st, "dead2@example.com", validMetadata(t, "Dead Two", "01ADMIN"),
		time.Now().Add(-9*24*time.Hour), time.Now().Add(-48*time.Hour))

	seedInvitation(t, st, "corrupt@example.com",
		[]byte(`{"name":"No Role","invitedBy":"01ADMIN","invitedAt":"2026-01-01T00:00:00Z"}`),
		time.Now(), time.Now().Add(24*time.Hour))

	res, err := svc.ListPendingInvitations(ctx, ListOptions{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	require.NotContains(t, emails(res.Items), "dead1@example.com")
	require.NotContains(t, emails(res.Items), "dead2@example.com")
	require.NotContains(t, emails(res.Items), "corrupt@example.com")
}

func TestListPendingSortStability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	seedPending(t, svc, "charlie@example.com", "Charlie", "01ADMIN")
	seedPending(t, svc, "a1@example.com", "alice", "01ADMIN")
	seedPending(t, svc, "b1@example.com", "Bob", "01ADMIN")

	res, err := svc.ListPendingInvitations(ctx, ListOptions{SortBy: SortByName, SortOrder: SortAsc})
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "Bob", "Charlie"}, names(res.Items))

	res, err = svc.ListPendingInvitations(ctx, ListOptions{SortBy: SortByName, SortOrder: SortDesc})
	require.NoError(t, err)
	require.Equal(t, []string{"Charlie", "Bob", "alice"}, names(res.Items))
}

func TestListPendingDefaultSortIsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newTestService(t)

	base := time.Now()
	for i, email := range []string{"first@example.com", "second@example.com", "third@example.com"} {
		invitedAt := base.Add(time.Duration(i) * time.Hour)
		raw, err := domain.InvitationMetadata{
			Name:      email,
			Role:      domain.RoleUser,
			InvitedBy: "01ADMIN",
			InvitedAt: invitedAt.UTC(),
		}.Encode()
		require.NoError(t, err)
		seedInvitation(t, st, email, raw, invitedAt, base.Add(7*24*time.Hour))
	}

	res, err := svc.ListPendingInvitations(ctx, ListOptions{})
	require.NoError(t, err)
	require.Equal(t,
		[]string{"third@example.com", "second@example.com", "first@example.com"},
		emails(res.Items))
}

func TestListPendingPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, email := range []string{"p1@example.com", "p2@example.com", "p3@example.com", "p4@example.com", "p5@example.com"} {
		seedPending(t, svc, email, "Paged "+email, "01ADMIN")
	}

	t.Run("pages slice after the total is counted", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{Page: 1, Limit: 2, SortBy: SortByEmail, SortOrder: SortAsc})
		require.NoError(t, err)
		require.Equal(t, 5, res.Total)
		require.Equal(t, []string{"p1@example.com", "p2@example.com"}, emails(res.Items))

		res, err = svc.ListPendingInvitations(ctx, ListOptions{Page: 3, Limit: 2, SortBy: SortByEmail, SortOrder: SortAsc})
		require.NoError(t, err)
		require.Equal(t, 5, res.Total)
		require.Equal(t, []string{"p5@example.com"}, emails(res.Items))
	})

	t.Run("out-of-range page is empty, not an error", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{Page: 10, Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 5, res.Total)
		require.Empty(t, res.Items)
	})

	t.Run("zero values fall back to defaults", func(t *testing.T) {
		res, err := svc.ListPendingInvitations(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, res.Items, 5)
	})
}

func TestListPendingResolvesInviterNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newTestService(t)

	admin := domain.User{
		ID:           idx.New().String(),
		Email:        "admin@example.com",
		Name:         "Ada Admin",
		Role:         domain.RoleAdmin,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, st.Users().CreateUser(ctx, admin))

	seedPending(t, svc, "known@example.com", "Known Inviter", admin.ID)
	seedPending(t, svc, "orphan@example.com", "Orphaned Invite", "01GONE")

	res, err := svc.ListPendingInvitations(ctx, ListOptions{SortBy: SortByEmail, SortOrder: SortAsc})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	require.NotNil(t, res.Items[0].InvitedByName)
	require.Equal(t, "Ada Admin", *res.Items[0].InvitedByName)

	// Inviter no longer exists: name resolves to nil, never an error.
	require.Nil(t, res.Items[1].InvitedByName)
}
