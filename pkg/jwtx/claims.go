package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lakemont/crmdash/pkg/idx"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
// Short-lived for security; the client is expected to refresh.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims are the access-token claims used across the service. The subject is
// the user ID; email rides along so handlers can echo identity without a
// store lookup.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(subject, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		Email: email,
	}
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateIssuer checks the issuer claim against the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
