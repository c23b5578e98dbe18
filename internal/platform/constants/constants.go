// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie and anti-forgery configuration.
  - Navigation: The landing page and per-user URL scopes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const AppName = "yomira-notes"

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

// The per-IP rate and burst are configured (RATE_LIMIT_RPS, RATE_LIMIT_BURST).
const (
	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions & Anti-Forgery

const (
	// SessionIssuer is the 'iss' claim of the signed session cookie.
	SessionIssuer = "yomira-notes"

	// SessionCookieName is the name of the cookie carrying the signed session id.
	SessionCookieName = "yomira_session"

	// SessionIDLength is the byte length of the random session identifier.
	SessionIDLength = 32

	// CSRFTokenLength is the byte length of the per-session anti-forgery token.
	CSRFTokenLength = 32

	// CSRFFormField is the form field carrying the anti-forgery token.
	CSRFFormField = "csrf_token"

	// HeaderCSRFToken is the alternative header carrying the anti-forgery token.
	HeaderCSRFToken = "X-CSRF-Token"

	// MinSessionSecretLength is the minimum byte length of SESSION_SECRET.
	MinSessionSecretLength = 32
)

// # Navigation

const (
	// LandingPath is the anonymous landing page; "/" redirects here.
	LandingPath = "/register"

	// RootPath is where unauthenticated visitors are sent.
	RootPath = "/"
)

// UserPath returns the profile URL scoped to username.
func UserPath(username string) string {
	return "/users/" + username
}

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "session:"
)
