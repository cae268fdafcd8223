/*
Package dashsdk provides a client SDK for the CRM dashboard service.

# Overview

The dashsdk package implements a stateful client for the dashboard API. A
Client owns a cookie jar for the HTTP-only refresh cookie, holds the
short-lived access token in memory, and tracks an authentication state
machine so callers always know whether a user is signed in.

# Client Lifecycle

Create a Client and call Start once before using it. Start performs a
single silent-refresh attempt against the stored cookie and settles the
client into either StateAuthenticated or StateAnonymous:

	client := dashsdk.NewClient("https://dash.example.com")

	if err := client.Start(ctx); err != nil {
		// transport failure; state is StateAnonymous
	}

	switch client.State() {
	case dashsdk.StateAuthenticated:
		// resume the previous session
	case dashsdk.StateAnonymous:
		// show the login form
	}

Register and Login establish a new session and move the client to
StateAuthenticated. Logout revokes the refresh token server-side and
clears all local credentials, even when the request fails.

# Automatic Token Refresh

Authenticated calls such as Records attach the in-memory access token. On
a 401 response the client refreshes once using the cookie and retries the
request with the new token. Concurrent refreshes coalesce into a single
network call, so a burst of expired requests triggers exactly one token
exchange.

When the refresh itself is rejected the client clears its credentials and
drops to StateAnonymous, and the caller receives the original API error.

# Error Handling

Server errors decode into *APIError, which carries the machine-readable
code and human-readable description from the error envelope:

	_, err := client.Login(ctx, dashsdk.LoginRequest{Email: email, Password: password})
	var apiErr *dashsdk.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case dashsdk.ErrorCodeInvalidCredentials:
			// wrong email or password
		case dashsdk.ErrorCodeDuplicateEmail:
			// account already exists
		}
	}

Responses that are not valid error envelopes (proxies, panics) fall back
to a generic *APIError carrying the HTTP status code.
*/
package dashsdk
