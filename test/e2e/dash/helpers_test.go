package dash_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lakemont/crmdash/internal/dash/crm"
	dashhttp "github.com/lakemont/crmdash/internal/dash/http"
	"github.com/lakemont/crmdash/internal/dash/service"
	"github.com/lakemont/crmdash/internal/dash/store/drivers/sqlite"
	"github.com/lakemont/crmdash/pkg/dashsdk"
	"github.com/lakemont/crmdash/pkg/httpx"
	"github.com/lakemont/crmdash/pkg/jwtx"
	"github.com/lakemont/crmdash/pkg/slogx"
)

/*
 * Common helpers for dashboard end-to-end tests. The whole stack runs
 * in-process: a fake CRM behind httptest, the real router on top of an
 * in-memory store, and the SDK client driving everything over TLS so the
 * Secure refresh cookie behaves as it would in a browser.
 */

const (
	testEmail    = "ada@example.com"
	testPassword = "Hunter2!"
)

func init() {
	// E2E tests fire rapid request bursts; production limits would trip.
	generous := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	httpx.StrictLimit = generous
	httpx.ModerateLimit = generous
	httpx.LenientLimit = generous
}

// fakeCRM is an httptest-backed stand-in for the upstream CRM. Each
// authentication mints a new session token; records calls against any other
// token are rejected the way the real CRM rejects dead sessions.
type fakeCRM struct {
	srv *httptest.Server

	mu           sync.Mutex
	currentToken string
	authCalls    atomic.Int64
}

func newFakeCRM(t *testing.T) *fakeCRM {
	t.Helper()
	f := &fakeCRM{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.authCalls.Add(1)
		f.mu.Lock()
		f.currentToken = "crm-session-" + strconv.FormatInt(n, 10)
		token := f.currentToken
		f.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]string{
			"access_token": token,
			"instance_url": f.srv.URL,
		})
	})
	mux.HandleFunc("GET /api/records", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		valid := f.currentToken != "" && r.Header.Get("Authorization") == "Bearer "+f.currentToken
		f.mu.Unlock()
		if !valid {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`[{"errorCode":"INVALID_SESSION_ID","message":"Session expired or invalid"}]`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"records":      []map[string]string{{"id": "001", "name": "Acme"}},
			"totalRecords": 1,
		})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// invalidateSession kills the current CRM session without telling anyone,
// the way an expiry or admin revocation would.
func (f *fakeCRM) invalidateSession() {
	f.mu.Lock()
	f.currentToken = "revoked"
	f.mu.Unlock()
}

// testStack is the full service wired up for one test.
type testStack struct {
	server *httptest.Server
	crm    *fakeCRM
}

func setupStack(t *testing.T) *testStack {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	fake := newFakeCRM(t)

	tokens := jwtx.NewHS256("e2e-secret-e2e-secret-e2e-secret", "crmdash-e2e")
	logger := slogx.New(slogx.Config{Service: "crmdash-e2e", Level: "error", Format: "text"})

	router := dashhttp.NewRouter(tokens, "e2e", st, logger)
	router.IdentityService = &service.IdentityService{Store: st, Tokens: tokens}
	router.CRMSessions = crm.NewSessionCache(crm.NewHTTPAPI(crm.Credentials{
		LoginURL:      fake.srv.URL,
		Username:      "svc@example.com",
		Password:      "service-password",
		SecurityToken: "TOK",
		ClientID:      "e2e-client",
		ClientSecret:  "e2e-secret",
	}), 0)
	router.ApplyRoutes()

	srv := httptest.NewTLSServer(router)
	t.Cleanup(srv.Close)

	return &testStack{server: srv, crm: fake}
}

// newClient creates an SDK client against the stack, trusting the test
// server's certificate.
func (s *testStack) newClient(t *testing.T) *dashsdk.Client {
	t.Helper()

	client, err := dashsdk.NewClient(s.server.URL)
	require.NoError(t, err)
	client.HTTPClient.Transport = s.server.Client().Transport
	return client
}

// newClientSharingJar models an app restart: a fresh client holding the
// previous client's cookies but none of its in-memory state.
func (s *testStack) newClientSharingJar(t *testing.T, prev *dashsdk.Client) *dashsdk.Client {
	t.Helper()

	client := s.newClient(t)
	client.HTTPClient.Jar = prev.HTTPClient.Jar
	return client
}
