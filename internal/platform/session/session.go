// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the cookie-backed session manager.

The client only ever holds a signed, opaque session id. Everything else (the
acting username, the anti-forgery token and pending flash notices) lives in a
process-external key-value store, Redis in production.

Lifecycle:

  - Absent by default: the first request receives a fresh anonymous session.
    Its cookie is sent at once, but the record is only written when a page
    hands out its CSRF token or a notice is queued, so bare redirects and
    health checks leave the store untouched.
  - Login/registration rotate the session id and set the identity.
  - Logout and account deletion destroy the record and issue a fresh anonymous session.

The identity is never re-validated against the user table once set. Callers that
need "who is acting" go through the guard package, which is the single place a
re-validation policy would be added.
*/
package session

import (
	"context"
	"errors"
	"time"
)

// # Domain Entities

// Session is the server-side state attached to one client cookie.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	CSRFToken string    `json:"csrf_token"`
	Flashes   []string  `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	draft bool
}

// Authenticated reports whether the session carries an identity claim.
func (s *Session) Authenticated() bool {
	return s != nil && s.Username != ""
}

// Persisted reports whether the session has been written to the store.
func (s *Session) Persisted() bool {
	return s != nil && !s.draft
}

// # Storage Contract

// ErrNotFound is returned by a [Store] when the session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Store persists session records by id.
type Store interface {
	// Get returns the session with the given id, or [ErrNotFound].
	Get(context context.Context, id string) (*Session, error)

	// Set writes the session, replacing any previous value, with the given TTL.
	Set(context context.Context, sess *Session, ttl time.Duration) error

	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(context context.Context, id string) error

	// Ping reports whether the backing store is reachable.
	Ping(context context.Context) error
}
