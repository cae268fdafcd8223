package dashsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Client is a stateful client for the dashboard API. It keeps the access
// token in memory, lets the cookie jar carry the HttpOnly refresh cookie,
// and transparently refreshes the access token when the server rejects it.
//
// A Client is safe for concurrent use. Concurrent requests that all hit a
// 401 share a single refresh call; see authorizedDo.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	startOnce    sync.Once
	refreshGroup singleflight.Group

	mu          sync.RWMutex
	state       State
	accessToken string
	user        *UserInfo
}

// NewClient creates a dashboard API client. The returned client owns a
// cookie jar so the refresh cookie survives across calls, exactly as a
// browser would hold it.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		state: StateUninitialized,
	}, nil
}

// State reports the current lifecycle state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CurrentUser returns the signed-in user, or nil when anonymous.
func (c *Client) CurrentUser() *UserInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// AccessToken returns the in-memory access token, or "".
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// Start performs the one-time silent sign-in check: if the jar holds a
// refresh cookie from a previous session the client resumes it, otherwise
// it settles on Anonymous. Repeated calls are no-ops; the first result
// wins. Start never returns an error because an anonymous outcome is a
// normal one.
func (c *Client) Start(ctx context.Context) State {
	c.startOnce.Do(func() {
		c.setState(StateChecking)
		if _, err := c.refresh(ctx); err != nil {
			c.clearAuth()
		}
	})
	return c.State()
}

// Register creates an account and signs the client in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	return c.authenticate(ctx, "/auth/register", req, http.StatusCreated)
}

// Login signs the client in with existing credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*UserInfo, error) {
	return c.authenticate(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, http.StatusOK)
}

func (c *Client) authenticate(ctx context.Context, path string, body any, wantStatus int) (*UserInfo, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return nil, parseAPIError(resp)
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.setAuth(auth)
	u := auth.UserInfo()
	return &u, nil
}

// Logout revokes the session server-side and drops all local credentials.
// The client ends up Anonymous even if the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	token := c.AccessToken()
	defer c.clearAuth()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp)
	}
	return nil
}

// Me fetches the identity behind the current access token. It calls the
// server directly without the 401-retry path; refresh decisions for the
// identity check belong to Start.
func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}

	var u UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &u, nil
}

// Records fetches one page of CRM records, refreshing the access token
// once if the server rejects it.
func (c *Client) Records(ctx context.Context, page, pageSize int) (*RecordsResponse, error) {
	path := fmt.Sprintf("/external/records?page=%d&pageSize=%d", page, pageSize)

	resp, err := c.authorizedDo(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}

	var records RecordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &records, nil
}

// authorizedDo performs an authenticated request. On a 401 it refreshes the
// access token and retries exactly once; the refresh itself is coalesced
// across goroutines so a burst of concurrent 401s costs one refresh call.
func (c *Client) authorizedDo(ctx context.Context, method, path string) (*http.Response, error) {
	resp, err := c.bearerRequest(ctx, method, path, c.AccessToken())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	token, err := c.refresh(ctx)
	if err != nil {
		c.clearAuth()
		return nil, err
	}

	return c.bearerRequest(ctx, method, path, token)
}

func (c *Client) bearerRequest(ctx context.Context, method, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// refresh exchanges the refresh cookie for a new access token. Concurrent
// callers share one in-flight exchange via singleflight.
func (c *Client) refresh(ctx context.Context) (string, error) {
	token, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		resp, err := c.doRequest(ctx, http.MethodPost, "/auth/refresh-token", nil)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", parseAPIError(resp)
		}

		var auth AuthResponse
		if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		c.setAuth(auth)
		return auth.Token, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *Client) setAuth(auth AuthResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAuthenticated
	c.accessToken = auth.Token
	u := auth.UserInfo()
	c.user = &u
}

func (c *Client) clearAuth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAnonymous
	c.accessToken = ""
	c.user = nil
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// parseAPIError decodes the server's error envelope, falling back to a
// generic error when the body is not in the expected shape.
func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Code == "" {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
