package domain

import "time"

// User is a local dashboard identity. RefreshTokenHash holds the SHA-256
// fingerprint of the single active refresh token; it is overwritten on every
// login or registration and cleared on logout. Empty means no active token.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	RefreshTokenHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
