package store

import (
	"context"
	"errors"

	"github.com/lakemont/crmdash/internal/dash/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to do multi-step operations that must be atomic
	// (e.g. credential check plus refresh-token rotation).
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

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail does a case-sensitive exact-match lookup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByRefreshTokenHash finds the user currently holding the given
	// refresh-token fingerprint.
	GetUserByRefreshTokenHash(ctx context.Context, hash string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateRefreshTokenHash overwrites the stored refresh-token fingerprint,
	// invalidating whatever token was active before (rotation).
	UpdateRefreshTokenHash(ctx context.Context, userID, hash string) error

	// ClearRefreshTokenHash drops the stored fingerprint (logout).
	ClearRefreshTokenHash(ctx context.Context, userID string) error
}
