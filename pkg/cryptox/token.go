package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// RefreshTokenSize is the raw byte length of refresh tokens before encoding.
// 40 random bytes gives 320 bits of entropy, 80 hex characters on the wire.
const RefreshTokenSize = 40

// GenerateRefreshToken creates a cryptographically secure opaque refresh
// token, hex-encoded.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, RefreshTokenSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Tokens are stored hashed so a database leak does not leak usable secrets;
// lookup fingerprints the presented value and compares fingerprints.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
