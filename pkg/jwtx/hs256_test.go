package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lakemont/crmdash/pkg/jwtx"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestHS256_SignAndVerify(t *testing.T) {
	h := jwtx.NewHS256(testSecret, "crmdash")

	t.Run("round trip", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("user-1", "ada@example.com", "", time.Hour, time.Now())

		token, err := h.Sign(claims)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := h.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", got.Subject)
		require.Equal(t, "ada@example.com", got.Email)
		require.Equal(t, "crmdash", got.Issuer)
		require.NotEmpty(t, got.ID)
	})

	t.Run("sign stamps the configured issuer", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("user-1", "", "", time.Hour, time.Now())
		require.Empty(t, claims.Issuer)

		token, err := h.Sign(claims)
		require.NoError(t, err)

		got, err := h.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "crmdash", got.Issuer)
	})

	t.Run("wrong secret", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("user-1", "", "", time.Hour, time.Now())
		token, err := h.Sign(claims)
		require.NoError(t, err)

		other := jwtx.NewHS256("another-secret-another-secret-12", "crmdash")
		_, err = other.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("user-1", "", "someone-else", time.Hour, time.Now())
		token, err := h.Sign(claims)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired token", func(t *testing.T) {
		// Issued well in the past so the 30s verification leeway cannot save it.
		claims := jwtx.NewAccessClaims("user-1", "", "", time.Minute, time.Now().Add(-time.Hour))
		token, err := h.Sign(claims)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := h.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("rejects non-HMAC algorithms", func(t *testing.T) {
		// alg=none must never verify.
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.Error(t, err)
	})
}

func TestNewAccessClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	claims := jwtx.NewAccessClaims("user-1", "ada@example.com", "crmdash", 15*time.Minute, now)

	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "crmdash", claims.Issuer)
	require.Equal(t, now, claims.IssuedAt.Time)
	require.Equal(t, now.Add(15*time.Minute), claims.ExpiresAt.Time)

	// Every token gets a unique jti.
	other := jwtx.NewAccessClaims("user-1", "ada@example.com", "crmdash", 15*time.Minute, now)
	require.NotEqual(t, claims.ID, other.ID)
}
