package store

import (
	"context"
	"errors"

	"github.com/foyerhq/foyer/internal/foyer/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Verifications() Verifications
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back; otherwise it is committed. This is the
	// recommended way to handle multi-step writes such as resend
	// (delete-all then create) and signup (create user then cleanup).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Verifications is a generic keyed store of verification records: an opaque
// identifier, a hashed secret, an expiry, and a metadata blob. Invitation
// semantics live in the service layer; this contract knows nothing of them.
type Verifications interface {
	// CreateVerification inserts a new record (id is provided by app via ULID).
	CreateVerification(ctx context.Context, rec domain.VerificationRecord) error

	// GetLatestVerification returns the most-recently-created record for the
	// identifier, regardless of expiry. ErrNotFound when none exist.
	GetLatestVerification(ctx context.Context, identifier string) (domain.VerificationRecord, error)

	// ListVerificationsByPrefix returns every record whose identifier starts
	// with prefix, newest first.
	ListVerificationsByPrefix(ctx context.Context, prefix string) ([]domain.VerificationRecord, error)

	// DeleteVerifications removes ALL records for the identifier and returns
	// how many were removed. Deleting zero records is not an error.
	DeleteVerifications(ctx context.Context, identifier string) (int64, error)

	// DeleteExpiredVerifications is housekeeping; expired records are already
	// logically invisible.
	DeleteExpiredVerifications(ctx context.Context) error
}

// Users is the directory of registered accounts. The query engine only needs
// name resolution; the accept flow also creates accounts.
type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used to reject signup for already-registered emails.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}
