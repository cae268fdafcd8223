// Package crm talks to the external CRM system. It owns the cached CRM
// session and the single-retry recovery protocol for server-side session
// invalidation.
package crm

import (
	"context"
	"errors"
	"time"

	"github.com/lakemont/crmdash/internal/dash/domain"
)

var (
	// ErrAuthFailed means no CRM session could be established (bad external
	// credentials, network failure, or timeout). Not retried automatically.
	ErrAuthFailed = errors.New("crm: external authentication failed")

	// ErrInvalidSession is returned by an API implementation when the CRM
	// rejects an established session mid-use. The session cache recovers
	// from it once; callers outside this package should never see it.
	ErrInvalidSession = errors.New("crm: invalid session")

	// ErrSessionExpired is surfaced when a freshly established session is
	// rejected again, i.e. the single recovery retry also failed.
	ErrSessionExpired = errors.New("crm: session expired")
)

// Session is an immutable snapshot of an authenticated CRM connection.
// Entries are replaced wholesale on renewal, never mutated.
type Session struct {
	AccessToken string
	InstanceURL string
	ExpiresAt   time.Time
}

// API is the narrow interface to the external CRM. Implementations decide
// internally whether a failure is an invalid-session rejection and return
// ErrInvalidSession for it; callers never inspect error shapes.
type API interface {
	// Authenticate establishes a fresh CRM session.
	Authenticate(ctx context.Context) (Session, error)

	// FetchRecords reads one page of records using the given session.
	FetchRecords(ctx context.Context, sess Session, limit, offset int) (domain.RecordPage, error)
}
