package crm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lakemont/crmdash/internal/dash/domain"
	"github.com/lakemont/crmdash/pkg/slogx"
)

const (
	// safetyMargin keeps us from using a session so close to expiry that it
	// dies mid-request.
	safetyMargin = 5 * time.Minute

	// sessionTTL is a conservative fixed lifetime assumed for new sessions;
	// the CRM does not report its own exact expiry.
	sessionTTL = 2 * time.Hour

	defaultAuthTimeout = 15 * time.Second
)

// SessionCache holds at most one CRM session for the whole process and
// renews it before expiry. It is safe for concurrent use: the
// check-expiry-then-reauthenticate sequence runs under a single lock, so
// concurrent expirations cannot trigger redundant external authentications.
type SessionCache struct {
	api         API
	authTimeout time.Duration

	mu    sync.Mutex
	entry *Session

	now func() time.Time // test hook
}

// NewSessionCache wraps api with caching and expiry-aware renewal.
// authTimeout bounds each external authentication attempt; zero picks a
// default so no request can hang on the CRM indefinitely.
func NewSessionCache(api API, authTimeout time.Duration) *SessionCache {
	if authTimeout <= 0 {
		authTimeout = defaultAuthTimeout
	}
	return &SessionCache{
		api:         api,
		authTimeout: authTimeout,
		now:         time.Now,
	}
}

// Session returns the cached session while it is comfortably inside its
// lifetime, re-authenticating otherwise. Authentication failures map to
// ErrAuthFailed and are not retried here.
func (c *SessionCache) Session(ctx context.Context) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionLocked(ctx)
}

func (c *SessionCache) sessionLocked(ctx context.Context) (Session, error) {
	if c.entry != nil && c.now().Add(safetyMargin).Before(c.entry.ExpiresAt) {
		return *c.entry, nil
	}

	l := slogx.FromContext(ctx)
	l.Info("establishing new crm session")

	authCtx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	sess, err := c.api.Authenticate(authCtx)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}

	sess.ExpiresAt = c.now().Add(sessionTTL)
	c.entry = &sess
	return sess, nil
}

// Invalidate drops the cached session unconditionally. Called on explicit
// logout and on detected session invalidation.
func (c *SessionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// FetchRecords reads one page of records through the retry protocol.
func (c *SessionCache) FetchRecords(ctx context.Context, limit, offset int) (domain.RecordPage, error) {
	var page domain.RecordPage
	err := c.do(ctx, func(ctx context.Context, sess Session) error {
		var err error
		page, err = c.api.FetchRecords(ctx, sess, limit, offset)
		return err
	})
	if err != nil {
		return domain.RecordPage{}, err
	}
	return page, nil
}

// do runs fn with the current session. If the CRM rejects the session
// mid-use, the cache is invalidated and fn retried exactly once with a fresh
// session; a second rejection surfaces as ErrSessionExpired. This bounds
// retry amplification to one extra round-trip per logical request.
func (c *SessionCache) do(ctx context.Context, fn func(ctx context.Context, sess Session) error) error {
	sess, err := c.Session(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, sess)
	if !errors.Is(err, ErrInvalidSession) {
		return err
	}

	slogx.FromContext(ctx).Info("crm session rejected, reconnecting once",
		slog.Time("cached_expiry", sess.ExpiresAt))

	c.Invalidate()
	sess, serr := c.Session(ctx)
	if serr != nil {
		return serr
	}

	err = fn(ctx, sess)
	if errors.Is(err, ErrInvalidSession) {
		return ErrSessionExpired
	}
	return err
}
