package dashsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lakemont/crmdash/pkg/httpx"
)

// Error codes shared between the server and the SDK client.
const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeDuplicateEmail         = "duplicate_email"
	ErrorCodeInvalidCredentials     = "invalid_credentials"
	ErrorCodeMissingRefreshToken    = "missing_refresh_token"
	ErrorCodeInvalidRefreshToken    = "invalid_refresh_token"
	ErrorCodeUnauthenticated        = "unauthenticated"
	ErrorCodeExternalAuthFailed     = "external_auth_failed"
	ErrorCodeExternalSessionExpired = "external_session_expired"
	ErrorCodeServerError            = "server_error"
)

// APIError is the error envelope every non-2xx response carries. It
// implements the error interface so the SDK can surface server rejections
// directly, and the server handlers use the predefined instances below to
// write responses.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest covers malformed bodies and missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrDuplicateEmail is returned when registering an email that already
	// has an account.
	ErrDuplicateEmail = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateEmail,
		Description: "an account with this email already exists",
	}

	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrMissingRefreshToken is returned when the refresh cookie is absent.
	ErrMissingRefreshToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingRefreshToken,
		Description: "no refresh token provided",
	}

	// ErrInvalidRefreshToken is returned when the presented refresh token
	// matches no account.
	ErrInvalidRefreshToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRefreshToken,
		Description: "refresh token is invalid or has been revoked",
	}

	// ErrUnauthenticated is returned when a protected endpoint is called
	// without a valid access token.
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "a valid access token is required",
	}

	// ErrExternalAuthFailed is returned when the upstream CRM rejects our
	// service credentials.
	ErrExternalAuthFailed = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeExternalAuthFailed,
		Description: "could not authenticate with the upstream data provider",
	}

	// ErrExternalSessionExpired is returned when the upstream CRM session
	// could not be re-established after invalidation.
	ErrExternalSessionExpired = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeExternalSessionExpired,
		Description: "the upstream data provider session expired and could not be renewed",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}
)
