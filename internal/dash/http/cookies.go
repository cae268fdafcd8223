package http

import (
	"net/http"
	"time"
)

const (
	refreshCookieName = "refreshToken"

	// refreshCookieMaxAge bounds how long a browser keeps the cookie. The
	// server-side token has no expiry of its own; it dies on rotation or
	// logout.
	refreshCookieMaxAge = 30 * 24 * time.Hour
)

// setRefreshCookie installs the opaque refresh token as an HttpOnly cookie.
// SameSite=None with Secure because the dashboard frontend is served from a
// different origin than the API.
func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(refreshCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearRefreshCookie expires the refresh cookie immediately.
func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
