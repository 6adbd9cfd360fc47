package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/internal/foyer/store"
	"github.com/foyerhq/foyer/pkg/cryptox"
	"github.com/foyerhq/foyer/pkg/idx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

var (
	ErrInvalidInvitationRequest = errors.New("invalid invitation request")
	ErrInvalidRole              = errors.New("invalid role")
	ErrInvalidToken             = errors.New("invalid or expired invitation token")
	ErrEmailAlreadyRegistered   = errors.New("email already registered")
	ErrPasswordTooShort         = errors.New("password too short")
)

// DefaultInvitationTTL is how long an invitation token stays valid.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// MinPasswordLength applies to passwords chosen during invitation acceptance.
const MinPasswordLength = 8

// InviteSender delivers the plaintext secret to the invitee, typically by
// email. The service treats delivery as fire-and-forget: failures are logged,
// never propagated, and the service never learns whether delivery succeeded.
type InviteSender interface {
	SendInvitation(ctx context.Context, email, token string, expiresAt time.Time) error
}

// InvitationService owns the invitation lifecycle: issuing single-use,
// time-boxed tokens, validating and consuming them, and revoking them.
// Only SHA-256 fingerprints of tokens are ever stored.
type InvitationService struct {
	Store  store.Store
	Sender InviteSender  // optional
	TTL    time.Duration // zero means DefaultInvitationTTL
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInvitationTTL
}

// normalizeEmail lowercases and validates the invitation identity. Every
// operation goes through this so "Alice@Example.com" and "alice@example.com"
// address the same invitation.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidInvitationRequest
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidInvitationRequest
	}
	return email, nil
}

// buildRecord validates the invitation parameters and assembles a fresh
// record plus the plaintext token to deliver.
func (s *InvitationService) buildRecord(
	email string,
	name string,
	role domain.Role,
	invitedBy string,
	now time.Time,
) (domain.VerificationRecord, string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(invitedBy) == "" {
		return domain.VerificationRecord{}, "", ErrInvalidInvitationRequest
	}
	if !role.Valid() {
		return domain.VerificationRecord{}, "", ErrInvalidRole
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.VerificationRecord{}, "", err
	}

	meta := domain.InvitationMetadata{
		Name:      strings.TrimSpace(name),
		Role:      role,
		InvitedBy: invitedBy,
		InvitedAt: now.UTC(),
	}
	raw, err := meta.Encode()
	if err != nil {
		return domain.VerificationRecord{}, "", err
	}

	rec := domain.VerificationRecord{
		ID:         idx.New().String(),
		Identifier: domain.InvitationIdentifier(email),
		TokenHash:  cryptox.FingerprintToken(token),
		Metadata:   raw,
		ExpiresAt:  now.Add(s.ttl()),
		CreatedAt:  now,
	}
	return rec, token, nil
}

// Issue creates a new invitation for email and returns the plaintext token.
// The token is handed to the configured sender for out-of-band delivery; the
// stored record only holds its fingerprint.
func (s *InvitationService) Issue(
	ctx context.Context,
	email string,
	name string,
	role domain.Role,
	invitedBy string,
) (string, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	rec, token, err := s.buildRecord(email, name, role, invitedBy, time.Now())
	if err != nil {
		return "", err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Verifications().CreateVerification(ctx, rec)
	})
	if err != nil {
		log.Error("failed to store invitation",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return "", err
	}

	log.Info("invitation issued",
		slog.String("email", email),
		slog.String("role", string(role)),
		slog.String("invited_by", invitedBy),
		slog.Time("expires_at", rec.ExpiresAt),
	)

	s.deliver(ctx, email, token, rec.ExpiresAt)
	return token, nil
}

// Resend revokes every outstanding token for email and issues a fresh one
// with replaced metadata and a reset expiry. The delete and create run in one
// transaction, so a concurrent validation never observes the gap between the
// two halves.
func (s *InvitationService) Resend(
	ctx context.Context,
	email string,
	name string,
	role domain.Role,
	invitedBy string,
) (string, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	rec, token, err := s.buildRecord(email, name, role, invitedBy, time.Now())
	if err != nil {
		return "", err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Verifications().DeleteVerifications(ctx, rec.Identifier); err != nil {
			return err
		}
		return tx.Verifications().CreateVerification(ctx, rec)
	})
	if err != nil {
		log.Error("failed to replace invitation",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return "", err
	}

	log.Info("invitation resent",
		slog.String("email", email),
		slog.String("role", string(role)),
		slog.Time("expires_at", rec.ExpiresAt),
	)

	s.deliver(ctx, email, token, rec.ExpiresAt)
	return token, nil
}

// Delete removes every invitation record for email and returns how many were
// removed. Deleting an email with no invitations is not an error.
func (s *InvitationService) Delete(ctx context.Context, email string) (int64, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return 0, err
	}

	count, err := s.Store.Verifications().DeleteVerifications(ctx, domain.InvitationIdentifier(email))
	if err != nil {
		log.Error("failed to delete invitations",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return 0, err
	}

	if count > 0 {
		log.Info("invitations deleted",
			slog.String("email", email),
			slog.Int64("count", count),
		)
	}
	return count, nil
}

// Validate reports whether secret is the currently valid token for email.
// It returns false for unknown emails, expired tokens (expiry is strict: a
// token expiring exactly now is invalid), corrupt metadata, and mismatched
// secrets. Store failures also yield false: this path fails safe rather than
// leaking errors to unauthenticated callers.
func (s *InvitationService) Validate(ctx context.Context, email, secret string) bool {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return false
	}

	rec, err := s.Store.Verifications().GetLatestVerification(ctx, domain.InvitationIdentifier(email))
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		log.Error("invitation lookup failed, failing validation closed",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return false
	}

	if _, ok := domain.ParseInvitationMetadata(rec.Metadata); !ok {
		log.Warn("invitation has corrupt metadata, treating as absent",
			slog.String("email", email),
		)
		return false
	}

	if rec.Expired(time.Now()) {
		return false
	}

	fingerprint := cryptox.FingerprintToken(secret)
	return subtle.ConstantTimeCompare([]byte(fingerprint), []byte(rec.TokenHash)) == 1
}

// InvalidReason distinguishes why a token lookup failed, for UI messaging.
// The HTTP surface decides how much of this to expose to unauthenticated
// callers.
type InvalidReason string

const (
	ReasonNotFound     InvalidReason = "not_found"
	ReasonExpired      InvalidReason = "expired"
	ReasonInvalidToken InvalidReason = "invalid_token"
)

// TokenStatus is the result of a token lookup. When Valid is true, Metadata
// and ExpiresAt describe the invitation; otherwise Reason says why not.
type TokenStatus struct {
	Valid     bool
	Reason    InvalidReason
	Metadata  domain.InvitationMetadata
	ExpiresAt time.Time
}

// GetTokenStatus is Validate with a reason attached. Business non-matches
// (not found, expired, wrong token) are typed results, never errors; only a
// store failure returns an error.
func (s *InvitationService) GetTokenStatus(ctx context.Context, email, secret string) (TokenStatus, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return TokenStatus{Reason: ReasonNotFound}, nil
	}

	rec, err := s.Store.Verifications().GetLatestVerification(ctx, domain.InvitationIdentifier(email))
	if errors.Is(err, store.ErrNotFound) {
		return TokenStatus{Reason: ReasonNotFound}, nil
	}
	if err != nil {
		return TokenStatus{}, err
	}

	meta, ok := domain.ParseInvitationMetadata(rec.Metadata)
	if !ok {
		log.Warn("invitation has corrupt metadata, treating as absent",
			slog.String("email", email),
		)
		return TokenStatus{Reason: ReasonNotFound}, nil
	}

	if rec.Expired(time.Now()) {
		return TokenStatus{Reason: ReasonExpired}, nil
	}

	fingerprint := cryptox.FingerprintToken(secret)
	if subtle.ConstantTimeCompare([]byte(fingerprint), []byte(rec.TokenHash)) != 1 {
		return TokenStatus{Reason: ReasonInvalidToken}, nil
	}

	return TokenStatus{
		Valid:     true,
		Metadata:  meta,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// GetValidInvitation returns the pending invitation for email, or nil when
// none exists, the latest one has expired, or its metadata is corrupt. No
// token is required; admin tooling uses this as an existence check.
func (s *InvitationService) GetValidInvitation(ctx context.Context, email string) (*domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, nil
	}

	rec, err := s.Store.Verifications().GetLatestVerification(ctx, domain.InvitationIdentifier(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meta, ok := domain.ParseInvitationMetadata(rec.Metadata)
	if !ok {
		log.Warn("invitation has corrupt metadata, treating as absent",
			slog.String("email", email),
		)
		return nil, nil
	}

	if rec.Expired(time.Now()) {
		return nil, nil
	}

	return &domain.Invitation{
		Email:     email,
		Metadata:  meta,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// deliver hands the plaintext token to the sender, best-effort.
func (s *InvitationService) deliver(ctx context.Context, email, token string, expiresAt time.Time) {
	if s.Sender == nil {
		return
	}
	if err := s.Sender.SendInvitation(ctx, email, token, expiresAt); err != nil {
		slogx.FromContext(ctx).Warn("invitation delivery failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}
}
