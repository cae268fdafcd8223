package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lakemont/crmdash/internal/dash/domain"
	"github.com/lakemont/crmdash/internal/dash/store"
	"github.com/lakemont/crmdash/pkg/cryptox"
	"github.com/lakemont/crmdash/pkg/idx"
	"github.com/lakemont/crmdash/pkg/jwtx"
	"github.com/lakemont/crmdash/pkg/slogx"
)

var (
	ErrDuplicateIdentity   = errors.New("duplicate_identity")
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrInvalidRefreshToken = errors.New("invalid_refresh_token")
)

// IdentityService owns local users and the access/refresh token lifecycle.
// Refresh tokens rotate on register and login but deliberately not on
// refresh; see Refresh.
type IdentityService struct {
	Store     store.Store
	Tokens    jwtx.Signer
	AccessTTL time.Duration
}

// AuthResult carries everything a successful authentication produces.
// RefreshToken is the opaque value destined for the cookie; it is empty when
// the operation did not rotate the stored token.
type AuthResult struct {
	User         domain.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new identity and signs it in.
//
// The duplicate check is a case-sensitive exact match on email. On success a
// fresh refresh token is generated and persisted (fingerprinted) on the new
// user, and a signed access token is returned.
func (s *IdentityService) Register(
	ctx context.Context,
	email, password, firstName, lastName string,
) (*AuthResult, error) {
	l := slogx.FromContext(ctx)

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:               idx.New().String(),
		Email:            email,
		PasswordHash:     passwordHash,
		FirstName:        firstName,
		LastName:         lastName,
		RefreshTokenHash: cryptox.FingerprintToken(refreshOpaque),
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	accessToken, err := s.signAccess(user)
	if err != nil {
		return nil, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
	}, nil
}

// Login verifies credentials and rotates the refresh token.
//
// Unknown email and wrong password both map to ErrInvalidCredentials so the
// endpoint cannot be used for identity enumeration.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)

	refreshOpaque, err := cryptox.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	var user domain.User

	// Lookup and rotation are atomic so two interleaved logins cannot leave
	// a rotated-away token looking active.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}

		if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
			l.Info("password verification failed", slog.String("user_id", u.ID))
			return ErrInvalidCredentials
		}

		if err := tx.Users().UpdateRefreshTokenHash(ctx, u.ID, cryptox.FingerprintToken(refreshOpaque)); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.signAccess(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
	}, nil
}

// Refresh exchanges a refresh token for a new access token.
//
// The stored refresh token is NOT rotated here; only login and register
// rotate it. Rotation-on-every-refresh would invalidate concurrent tabs
// holding the same cookie mid-flight.
func (s *IdentityService) Refresh(ctx context.Context, refreshOpaque string) (*AuthResult, error) {
	hash := cryptox.FingerprintToken(refreshOpaque)

	user, err := s.Store.Users().GetUserByRefreshTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	accessToken, err := s.signAccess(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// Logout clears the stored refresh token for userID. An empty userID is a
// no-op; the handler clears the cookie regardless, so logout is idempotent
// and never fails for unauthenticated callers.
func (s *IdentityService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	err := s.Store.Users().ClearRefreshTokenHash(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil // already gone; logout stays idempotent
	}
	return err
}

// GetUser resolves an identity by ID for the identity-check endpoint.
func (s *IdentityService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *IdentityService) signAccess(u domain.User) (string, error) {
	ttl := s.AccessTTL
	if ttl == 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(u.ID, u.Email, "", ttl, time.Now())
	return s.Tokens.Sign(claims)
}
