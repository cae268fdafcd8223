package dashsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal stand-in for the dashboard API: one account, one
// valid access token at a time, refresh driven by a cookie.
type fakeServer struct {
	mu           sync.Mutex
	validToken   string
	refreshValue string

	refreshCalls  atomic.Int64
	refreshDelay  time.Duration
	refreshDenied bool
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	writeAuth := func(w http.ResponseWriter, token string, status int) {
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "refresh-opaque", Path: "/"})
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(AuthResponse{
			ID:    "user-1",
			Email: "ada@example.com",
			Token: token,
		})
	}

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.validToken = "token-registered"
		f.refreshValue = "refresh-opaque"
		f.mu.Unlock()
		writeAuth(w, "token-registered", http.StatusCreated)
	})

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "hunter2" {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		f.mu.Lock()
		f.validToken = "token-login"
		f.refreshValue = "refresh-opaque"
		f.mu.Unlock()
		writeAuth(w, "token-login", http.StatusOK)
	})

	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		time.Sleep(f.refreshDelay)

		cookie, err := r.Cookie("refreshToken")
		f.mu.Lock()
		denied := f.refreshDenied || err != nil || cookie.Value != f.refreshValue
		f.mu.Unlock()
		if denied {
			ErrInvalidRefreshToken.WriteError(w)
			return
		}

		f.mu.Lock()
		f.validToken = "token-refreshed"
		f.mu.Unlock()
		writeAuth(w, "token-refreshed", http.StatusOK)
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.validToken = ""
		f.refreshValue = ""
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "logout successful"})
	})

	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		f.mu.Lock()
		want := "Bearer " + f.validToken
		valid := f.validToken != "" && r.Header.Get("Authorization") == want
		f.mu.Unlock()
		if !valid {
			ErrUnauthenticated.WriteError(w)
		}
		return valid
	}

	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(UserInfo{ID: "user-1", Email: "ada@example.com"})
	})

	mux.HandleFunc("GET /external/records", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(RecordsResponse{
			Records:    []Record{{ID: "001", Name: "Acme"}},
			Pagination: Pagination{CurrentPage: 1, PageSize: 10, TotalRecords: 1, TotalPages: 1},
		})
	})

	return mux
}

func newTestClient(t *testing.T, f *fakeServer) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	return client, srv
}

func TestClient_Start(t *testing.T) {
	t.Run("settles on anonymous without a refresh cookie", func(t *testing.T) {
		client, _ := newTestClient(t, &fakeServer{})

		state := client.Start(context.Background())
		require.Equal(t, StateAnonymous, state)
		require.Nil(t, client.CurrentUser())
	})

	t.Run("resumes a session from the refresh cookie", func(t *testing.T) {
		f := &fakeServer{}
		client, _ := newTestClient(t, f)

		// A prior sign-in leaves the refresh cookie in the jar.
		_, err := client.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)

		// A fresh client sharing the jar models an app restart.
		restarted, err := NewClient(client.BaseURL)
		require.NoError(t, err)
		restarted.HTTPClient.Jar = client.HTTPClient.Jar

		state := restarted.Start(context.Background())
		require.Equal(t, StateAuthenticated, state)
		require.NotNil(t, restarted.CurrentUser())
		require.Equal(t, "user-1", restarted.CurrentUser().ID)
	})

	t.Run("is a one-time check", func(t *testing.T) {
		f := &fakeServer{}
		client, _ := newTestClient(t, f)

		client.Start(context.Background())
		client.Start(context.Background())
		require.EqualValues(t, 1, f.refreshCalls.Load())
	})
}

func TestClient_Authentication(t *testing.T) {
	t.Run("register signs the client in", func(t *testing.T) {
		client, _ := newTestClient(t, &fakeServer{})

		user, err := client.Register(context.Background(), RegisterRequest{
			Email:    "ada@example.com",
			Password: "hunter2",
		})
		require.NoError(t, err)
		require.Equal(t, "user-1", user.ID)
		require.Equal(t, StateAuthenticated, client.State())
		require.NotEmpty(t, client.AccessToken())
	})

	t.Run("login failure surfaces the server error", func(t *testing.T) {
		client, _ := newTestClient(t, &fakeServer{})

		_, err := client.Login(context.Background(), "ada@example.com", "wrong")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("logout drops local credentials", func(t *testing.T) {
		client, _ := newTestClient(t, &fakeServer{})

		_, err := client.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)

		require.NoError(t, client.Logout(context.Background()))
		require.Equal(t, StateAnonymous, client.State())
		require.Empty(t, client.AccessToken())
		require.Nil(t, client.CurrentUser())
	})
}

func TestClient_Records(t *testing.T) {
	t.Run("fetches with the current token", func(t *testing.T) {
		client, _ := newTestClient(t, &fakeServer{})

		_, err := client.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)

		records, err := client.Records(context.Background(), 1, 10)
		require.NoError(t, err)
		require.Len(t, records.Records, 1)
		require.Equal(t, 1, records.Pagination.TotalRecords)
	})

	t.Run("refreshes once on a rejected token", func(t *testing.T) {
		f := &fakeServer{}
		client, _ := newTestClient(t, f)

		_, err := client.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)

		// Invalidate the access token server-side; the cookie stays good.
		f.mu.Lock()
		f.validToken = "rotated-away"
		f.mu.Unlock()

		records, err := client.Records(context.Background(), 1, 10)
		require.NoError(t, err)
		require.Len(t, records.Records, 1)
		require.EqualValues(t, 1, f.refreshCalls.Load())
		require.Equal(t, "token-refreshed", client.AccessToken())
	})

	t.Run("failed refresh leaves the client anonymous", func(t *testing.T) {
		f := &fakeServer{}
		client, _ := newTestClient(t, f)

		_, err := client.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)

		f.mu.Lock()
		f.validToken = "rotated-away"
		f.refreshDenied = true
		f.mu.Unlock()

		_, err = client.Records(context.Background(), 1, 10)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeInvalidRefreshToken, apiErr.Code)
		require.Equal(t, StateAnonymous, client.State())
	})

	t.Run("concurrent rejections share one refresh", func(t *testing.T) {
		f := &fakeServer{refreshDelay: 200 * time.Millisecond}
		client, _ := newTestClient(t, f)

		_, err := client.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)

		f.mu.Lock()
		f.validToken = "rotated-away"
		f.mu.Unlock()
		f.refreshCalls.Store(0)

		const workers = 8
		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = client.Records(context.Background(), 1, 10)
			}(i)
		}
		wg.Wait()

		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
		}
		require.EqualValues(t, 1, f.refreshCalls.Load())
	})
}
