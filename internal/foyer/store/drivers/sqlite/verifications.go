package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/domain"
)

type verificationsRepo struct {
	q queryer
}

const verificationColumns = `id, identifier, token_hash, metadata, expires_at, created_at`

func (r *verificationsRepo) CreateVerification(ctx context.Context, rec domain.VerificationRecord) error {
	metadata := rec.Metadata
	if len(metadata) == 0 {
		metadata = json.RawMessage(`{}`)
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO verification_records (`+verificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Identifier,
		rec.TokenHash,
		string(metadata),
		formatTime(rec.ExpiresAt),
		formatTime(rec.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *verificationsRepo) GetLatestVerification(
	ctx context.Context,
	identifier string,
) (domain.VerificationRecord, error) {
	// Newest wins: creation time first, ULID as a deterministic tiebreak for
	// records created within the same instant.
	row := r.q.QueryRowContext(ctx, `
		SELECT `+verificationColumns+`
		FROM verification_records
		WHERE identifier = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		identifier,
	)

	rec, err := scanVerification(row)
	if err != nil {
		return domain.VerificationRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *verificationsRepo) ListVerificationsByPrefix(
	ctx context.Context,
	prefix string,
) ([]domain.VerificationRecord, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+verificationColumns+`
		FROM verification_records
		WHERE identifier LIKE ? || '%'
		ORDER BY created_at DESC, id DESC`,
		prefix,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.VerificationRecord
	for rows.Next() {
		rec, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *verificationsRepo) DeleteVerifications(
	ctx context.Context,
	identifier string,
) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM verification_records WHERE identifier = ?`,
		identifier,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *verificationsRepo) DeleteExpiredVerifications(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM verification_records WHERE expires_at <= ?`,
		formatTime(time.Now()),
	)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVerification(s scanner) (domain.VerificationRecord, error) {
	var (
		rec       domain.VerificationRecord
		metadata  string
		expiresAt string
		createdAt string
	)
	if err := s.Scan(&rec.ID, &rec.Identifier, &rec.TokenHash, &metadata, &expiresAt, &createdAt); err != nil {
		return domain.VerificationRecord{}, err
	}

	rec.Metadata = json.RawMessage(metadata)

	var err error
	if rec.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.VerificationRecord{}, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.VerificationRecord{}, err
	}
	return rec, nil
}
