// Package jwtx verifies the bearer tokens that gate the admin API. Tokens are
// HS256-signed JWTs carrying a space-delimited scope claim, minted by the
// account-management control plane with the shared service secret.
package jwtx

import (
	"errors"
	"time"
)

// ErrTokenExpired reports a structurally valid token past its expiry.
var ErrTokenExpired = errors.New("jwtx: token expired")

// Claims is the verified, decoded view of a bearer token.
type Claims struct {
	Subject   string
	Issuer    string
	Scopes    []string
	ExpiresAt time.Time
}

// ValidateExpiry returns ErrTokenExpired when the token's expiry has passed.
// Tokens without an expiry are rejected outright at parse time.
func (c Claims) ValidateExpiry() error {
	if !c.ExpiresAt.After(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}

// HasScope reports whether the claims carry the given scope.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
