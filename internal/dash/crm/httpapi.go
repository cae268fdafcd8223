package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lakemont/crmdash/internal/dash/domain"
)

// Credentials configures the OAuth2 resource-owner password flow against the
// CRM's login endpoint. SecurityToken is appended to the password, as the
// CRM requires for API logins from untrusted networks.
type Credentials struct {
	LoginURL      string
	Username      string
	Password      string
	SecurityToken string
	ClientID      string
	ClientSecret  string
}

// HTTPAPI is the production API implementation speaking the CRM's REST
// interface.
type HTTPAPI struct {
	Creds      Credentials
	HTTPClient *http.Client
}

// NewHTTPAPI builds a CRM client with a sane default HTTP client.
func NewHTTPAPI(creds Credentials) *HTTPAPI {
	return &HTTPAPI{
		Creds: creds,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var _ API = (*HTTPAPI)(nil)

// Authenticate performs the password-grant login call.
func (a *HTTPAPI) Authenticate(ctx context.Context) (Session, error) {
	if a.Creds.Username == "" || a.Creds.Password == "" ||
		a.Creds.ClientID == "" || a.Creds.ClientSecret == "" {
		return Session{}, fmt.Errorf("crm credentials not configured")
	}

	data := url.Values{
		"grant_type":    {"password"},
		"client_id":     {a.Creds.ClientID},
		"client_secret": {a.Creds.ClientSecret},
		"username":      {a.Creds.Username},
		"password":      {a.Creds.Password + a.Creds.SecurityToken},
	}

	endpoint := strings.TrimSuffix(a.Creds.LoginURL, "/") + "/services/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(data.Encode()))
	if err != nil {
		return Session{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("failed to send login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Session{}, fmt.Errorf("crm login failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		InstanceURL string `json:"instance_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return Session{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	if tokenResp.AccessToken == "" || tokenResp.InstanceURL == "" {
		return Session{}, fmt.Errorf("crm login response missing token or instance url")
	}

	return Session{
		AccessToken: tokenResp.AccessToken,
		InstanceURL: tokenResp.InstanceURL,
	}, nil
}

// FetchRecords reads one page of account records plus the total count.
// A 401 carrying the CRM's INVALID_SESSION_ID error code becomes
// ErrInvalidSession; the session cache decides what to do with it.
func (a *HTTPAPI) FetchRecords(ctx context.Context, sess Session, limit, offset int) (domain.RecordPage, error) {
	endpoint := strings.TrimSuffix(sess.InstanceURL, "/") + "/api/records"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("failed to create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("failed to send records request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("failed to read records response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if isInvalidSession(resp.StatusCode, body) {
			return domain.RecordPage{}, ErrInvalidSession
		}
		return domain.RecordPage{}, fmt.Errorf("crm records request failed with status %d: %s",
			resp.StatusCode, string(body))
	}

	var pageResp struct {
		Records      []domain.Record `json:"records"`
		TotalRecords int             `json:"totalRecords"`
	}
	if err := json.Unmarshal(body, &pageResp); err != nil {
		return domain.RecordPage{}, fmt.Errorf("failed to decode records response: %w", err)
	}

	return domain.RecordPage{
		Records:      pageResp.Records,
		TotalRecords: pageResp.TotalRecords,
	}, nil
}

// isInvalidSession recognizes the CRM's session-invalidation signal. The
// CRM reports it as a 401 with errorCode INVALID_SESSION_ID in the body.
func isInvalidSession(status int, body []byte) bool {
	if status != http.StatusUnauthorized {
		return false
	}

	// The error payload may be a single object or an array of them.
	var single struct {
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.ErrorCode == "INVALID_SESSION_ID" {
		return true
	}

	var many []struct {
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &many); err == nil {
		for _, e := range many {
			if e.ErrorCode == "INVALID_SESSION_ID" {
				return true
			}
		}
	}

	return false
}
