package domain

import (
	"encoding/json"
	"time"
)

// VerificationRecord is one row in the generic verification store: an opaque
// identifier grouping records, the fingerprint of a secret (never the secret
// itself), an expiry, and a free-form metadata blob. Invitations are the only
// verification kind the service currently issues, but the store shape is
// deliberately generic.
type VerificationRecord struct {
	ID         string
	Identifier string
	TokenHash  string
	Metadata   json.RawMessage
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired reports whether the record's validity window has passed at t.
// A record expiring exactly at t is already expired.
func (r VerificationRecord) Expired(t time.Time) bool {
	return !r.ExpiresAt.After(t)
}
