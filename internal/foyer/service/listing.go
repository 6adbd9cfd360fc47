package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/internal/foyer/store"
	"github.com/foyerhq/foyer/pkg/slogx"
)

// SortField selects which column pending invitations are sorted by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByEmail     SortField = "email"
	SortByInvitedAt SortField = "invitedAt"
	SortByExpiresAt SortField = "expiresAt"
)

// ParseSortField validates a raw sort key.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByName, SortByEmail, SortByInvitedAt, SortByExpiresAt:
		return SortField(s), true
	default:
		return "", false
	}
}

// SortOrder is the sort direction; anything other than "asc" means descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	defaultPageSize = 20
)

// ListOptions controls search, sorting, and pagination of the pending
// invitation listing. Zero values fall back to page 1, limit 20, sorted by
// invitation time, newest first.
type ListOptions struct {
	Search    string
	Page      int
	Limit     int
	SortBy    SortField
	SortOrder SortOrder
}

// ListResult is one page of pending invitations. Total counts every
// invitation matching the search, before pagination.
type ListResult struct {
	Items []domain.PendingInvitation
	Total int
}

// ListPendingInvitations lists every non-expired invitation, searchable by
// name or email (case-insensitive substring), sortable, and paginated. It is
// a pure read over a single snapshot fetch: records that expire or are
// corrupt are dropped with a warning, never surfaced as errors, and inviters
// that no longer exist resolve to a nil name.
func (s *InvitationService) ListPendingInvitations(
	ctx context.Context,
	opts ListOptions,
) (ListResult, error) {
	log := slogx.FromContext(ctx)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}

	// Single snapshot: everything below operates on this one fetch.
	records, err := s.Store.Verifications().ListVerificationsByPrefix(ctx, domain.InvitationPrefix)
	if err != nil {
		return ListResult{}, err
	}

	now := time.Now()
	inviterNames := make(map[string]*string)

	items := make([]domain.PendingInvitation, 0, len(records))
	for _, rec := range records {
		if rec.Expired(now) {
			continue
		}

		meta, ok := domain.ParseInvitationMetadata(rec.Metadata)
		if !ok {
			log.Warn("skipping invitation with corrupt metadata",
				slog.String("identifier", rec.Identifier),
			)
			continue
		}

		items = append(items, domain.PendingInvitation{
			Email:         domain.EmailFromIdentifier(rec.Identifier),
			Name:          meta.Name,
			Role:          meta.Role,
			InvitedBy:     meta.InvitedBy,
			InvitedByName: s.resolveInviterName(ctx, inviterNames, meta.InvitedBy),
			InvitedAt:     meta.InvitedAt,
			ExpiresAt:     rec.ExpiresAt,
		})
	}

	if q := strings.ToLower(strings.TrimSpace(opts.Search)); q != "" {
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Email), q) ||
				strings.Contains(strings.ToLower(item.Name), q) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	cmp := comparatorFor(opts.SortBy)
	if opts.SortOrder != SortAsc {
		base := cmp
		cmp = func(a, b domain.PendingInvitation) int { return -base(a, b) }
	}
	slices.SortStableFunc(items, cmp)

	total := len(items)

	start := (opts.Page - 1) * opts.Limit
	if start >= total {
		return ListResult{Items: []domain.PendingInvitation{}, Total: total}, nil
	}
	end := min(start+opts.Limit, total)

	return ListResult{Items: items[start:end], Total: total}, nil
}

// comparatorFor maps a sort key onto its comparator. Unknown keys fall back
// to invitation time, the default sort.
func comparatorFor(field SortField) func(a, b domain.PendingInvitation) int {
	switch field {
	case SortByName:
		return func(a, b domain.PendingInvitation) int { return compareFold(a.Name, b.Name) }
	case SortByEmail:
		return func(a, b domain.PendingInvitation) int { return compareFold(a.Email, b.Email) }
	case SortByExpiresAt:
		return func(a, b domain.PendingInvitation) int { return a.ExpiresAt.Compare(b.ExpiresAt) }
	default:
		return func(a, b domain.PendingInvitation) int { return a.InvitedAt.Compare(b.InvitedAt) }
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// resolveInviterName looks up the inviting user's name, memoized per call so
// one admin inviting many people costs one lookup. Lookup failures mean
// "name unknown", never an error.
func (s *InvitationService) resolveInviterName(
	ctx context.Context,
	cache map[string]*string,
	inviterID string,
) *string {
	if name, ok := cache[inviterID]; ok {
		return name
	}

	var name *string
	u, err := s.Store.Users().GetUserByID(ctx, inviterID)
	switch {
	case err == nil:
		n := u.Name
		name = &n
	case errors.Is(err, store.ErrNotFound):
		// Inviter deleted since the invitation was issued.
	default:
		slogx.FromContext(ctx).Warn("inviter lookup failed",
			slog.String("inviter_id", inviterID),
			slog.Any("error", err),
		)
	}

	cache[inviterID] = name
	return name
}
