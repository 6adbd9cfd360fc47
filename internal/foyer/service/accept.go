package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/internal/foyer/store"
	"github.com/foyerhq/foyer/pkg/cryptox"
	"github.com/foyerhq/foyer/pkg/idx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

// Accept consumes an invitation: it validates the token, creates the account
// with the name and role the invitation carries, and removes every invitation
// record for the email. User creation and cleanup are atomic.
//
// All token-level failures (unknown email, expired, wrong secret, corrupt
// metadata) collapse into ErrInvalidToken so the signup surface cannot be
// used to enumerate which invitations exist.
func (s *InvitationService) Accept(
	ctx context.Context,
	email string,
	secret string,
	password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	identifier := domain.InvitationIdentifier(email)

	rec, err := s.Store.Verifications().GetLatestVerification(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidToken
	}
	if err != nil {
		log.Error("invitation lookup failed", slog.Any("error", err))
		return domain.User{}, err
	}

	meta, ok := domain.ParseInvitationMetadata(rec.Metadata)
	if !ok {
		log.Warn("invitation has corrupt metadata, rejecting acceptance",
			slog.String("email", email),
		)
		return domain.User{}, ErrInvalidToken
	}

	if rec.Expired(time.Now()) {
		return domain.User{}, ErrInvalidToken
	}

	fingerprint := cryptox.FingerprintToken(secret)
	if subtle.ConstantTimeCompare([]byte(fingerprint), []byte(rec.TokenHash)) != 1 {
		log.Warn("invitation acceptance attempted with wrong token",
			slog.String("email", email),
		)
		return domain.User{}, ErrInvalidToken
	}

	// Reject signup before doing any work when the account already exists.
	_, err = s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check account availability", slog.Any("error", err))
		return domain.User{}, err
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         meta.Name,
		Role:         meta.Role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		// Post-signup cleanup: the invitation is consumed, all tokens die.
		_, err := tx.Verifications().DeleteVerifications(ctx, identifier)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailAlreadyRegistered
		}
		log.Error("failed to create user from invitation",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("user registered via invitation",
		slog.String("user_id", user.ID),
		slog.String("email", email),
		slog.String("role", string(user.Role)),
		slog.String("invited_by", meta.InvitedBy),
	)

	return user, nil
}
