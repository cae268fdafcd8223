package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lakemont/crmdash/internal/dash/service"
	"github.com/lakemont/crmdash/internal/dash/store"
	"github.com/lakemont/crmdash/pkg/dashsdk"
	"github.com/lakemont/crmdash/pkg/httpx"
	"github.com/lakemont/crmdash/pkg/jwtx"
	"github.com/lakemont/crmdash/pkg/slogx"
)

// RegisterHandler serves POST /auth/register.
type RegisterHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account and signs it in. The response carries a short-lived access token; the rotating refresh token is set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dashsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	dashsdk.AuthResponse	"user profile and access token"
//	@Failure		400		{object}	dashsdk.APIError		"error, error_description"
//	@Failure		500		{object}	dashsdk.APIError		"error, error_description"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.Identity.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateIdentity) {
			dashsdk.ErrDuplicateEmail.WriteError(w)
			return
		}
		log.Error("register failed", "err", err)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	setRefreshCookie(w, result.RefreshToken)
	httpx.WriteJSON(w, http.StatusCreated, authResponse(result))
}

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Sign in
//	@Description	Verifies credentials, rotates the stored refresh token and returns a fresh access token. The new refresh token replaces the HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dashsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	dashsdk.AuthResponse	"user profile and access token"
//	@Failure		400		{object}	dashsdk.APIError		"error, error_description"
//	@Failure		401		{object}	dashsdk.APIError		"error, error_description"
//	@Failure		500		{object}	dashsdk.APIError		"error, error_description"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.Identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			dashsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	setRefreshCookie(w, result.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, authResponse(result))
}

// RefreshHandler serves POST /auth/refresh-token.
type RefreshHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Refresh the access token
//	@Description	Exchanges the refresh cookie for a new access token. The stored refresh token is not rotated, so concurrent tabs sharing the cookie keep working.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	dashsdk.AuthResponse	"user profile and access token"
//	@Failure		401	{object}	dashsdk.APIError		"error, error_description"
//	@Failure		500	{object}	dashsdk.APIError		"error, error_description"
//	@Router			/auth/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		dashsdk.ErrMissingRefreshToken.WriteError(w)
		return
	}

	result, err := h.Identity.Refresh(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			// The cookie is dead weight; drop it so the client stops retrying.
			clearRefreshCookie(w)
			dashsdk.ErrInvalidRefreshToken.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse(result))
}

// LogoutHandler serves POST /auth/logout. The bearer token is optional;
// logout succeeds and clears the cookie even for anonymous callers.
type LogoutHandler struct {
	Identity *service.IdentityService
	Verifier jwtx.Verifier
}

// ServeHTTP godoc
//
//	@Summary		Sign out
//	@Description	Revokes the stored refresh token when the caller presents a valid access token, and clears the refresh cookie unconditionally.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]string	"message"
//	@Failure		500	{object}	dashsdk.APIError	"error, error_description"
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := h.bearerSubject(r)
	if err := h.Identity.Logout(ctx, userID); err != nil {
		log.Error("logout failed", "err", err)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// bearerSubject extracts the user ID from an optional bearer token. Invalid
// or absent tokens yield "", which Logout treats as a cookie-only logout.
func (h *LogoutHandler) bearerSubject(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	claims, err := h.Verifier.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")))
	if err != nil {
		return ""
	}
	return claims.Subject
}

// MeHandler serves GET /auth/me behind the authentication middleware.
type MeHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Current identity
//	@Description	Returns the account behind the presented access token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	dashsdk.UserInfo	"id, email, firstName, lastName"
//	@Failure		401	{object}	dashsdk.APIError	"error, error_description"
//	@Failure		500	{object}	dashsdk.APIError	"error, error_description"
//	@Security		BearerAuth
//	@Router			/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.Identity.GetUser(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived the account.
			dashsdk.ErrUnauthenticated.WriteError(w)
			return
		}
		log.Error("identity lookup failed", "err", err)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}
