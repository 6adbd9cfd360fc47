package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a raw bearer token and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256 signs and verifies tokens with a shared secret. The service only
// verifies; Sign exists for the control plane and for tests.
type HS256 struct {
	Secret []byte
	Issuer string
}

// tokenClaims is the wire shape: registered claims plus a space-delimited
// scope claim per RFC 8693.
type tokenClaims struct {
	jwt.RegisteredClaims

	Scope string `json:"scope,omitempty"`
}

// Verify parses and validates raw, enforcing the HS256 algorithm, the
// configured issuer, and the presence of an expiry.
func (h *HS256) Verify(raw string) (Claims, error) {
	var claims tokenClaims

	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return h.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("jwtx: token verification failed: %w", err)
	}

	out := Claims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
		Scopes:  strings.Fields(claims.Scope),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Sign mints a token for the given subject with the given scopes and TTL.
func (h *HS256) Sign(subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    h.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: strings.Join(scopes, " "),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: signing failed: %w", err)
	}
	return signed, nil
}
