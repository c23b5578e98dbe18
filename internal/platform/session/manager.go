// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/sec"
)

// # Contracts & Types

// Signer binds a session id to a tamper-evident cookie value.
type Signer interface {
	Sign(sessionID string, timeToLive time.Duration) (string, error)
	Verify(token string) (string, error)
}

// Options tunes the cookie and record lifetime.
type Options struct {
	// TTL is the lifetime of both the cookie and the stored record.
	TTL time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Manager owns the session lifecycle: load, rotate, flash and destroy.
type Manager struct {
	store   Store
	signer  Signer
	options Options
	logger  *slog.Logger
}

// NewManager constructs a session [Manager].
func NewManager(store Store, signer Signer, options Options, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		signer:  signer,
		options: options,
		logger:  logger,
	}
}

// Ping reports whether the backing store is reachable.
func (manager *Manager) Ping(context context.Context) error {
	return manager.store.Ping(context)
}

// # Loading

/*
Load returns the session referenced by the request cookie.

Description: A missing, tampered, expired or unknown cookie is not an error: a
fresh anonymous draft session is created and its cookie written. The draft is
persisted by the first [Manager.Flash] or [Manager.PopFlashes].

Parameters:
  - writer: http.ResponseWriter (receives the cookie for new sessions)
  - request: *http.Request

Returns:
  - *Session: Loaded or freshly issued session
  - error: Store connectivity failures
*/
func (manager *Manager) Load(writer http.ResponseWriter, request *http.Request) (*Session, error) {
	context := request.Context()

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err == nil && cookie.Value != "" {
		sessionID, verifyErr := manager.signer.Verify(cookie.Value)
		if verifyErr == nil {
			sess, getErr := manager.store.Get(context, sessionID)
			if getErr == nil {
				return sess, nil
			}
			if !errors.Is(getErr, ErrNotFound) {
				return nil, getErr
			}
		} else {
			manager.logger.DebugContext(context, "session_cookie_rejected", slog.Any("error", verifyErr))
		}
	}

	return manager.issue(writer, nil)
}

// # Identity Lifecycle

// Login rotates the session id and records username as the acting identity.
//
// Pending flashes carry over; the old record is deleted so a fixated id cannot
// be reused.
func (manager *Manager) Login(context context.Context, writer http.ResponseWriter, sess *Session, username string) error {
	if err := manager.store.Delete(context, sess.ID); err != nil {
		return err
	}

	fresh, err := manager.issue(writer, func(next *Session) {
		next.Username = username
		next.Flashes = sess.Flashes
	})
	if err != nil {
		return err
	}
	if err := manager.save(context, fresh); err != nil {
		return err
	}

	*sess = *fresh
	return nil
}

// Logout destroys the session record and replaces it with a fresh anonymous
// draft, so notices flashed afterwards still reach the client.
func (manager *Manager) Logout(context context.Context, writer http.ResponseWriter, sess *Session) error {
	if err := manager.store.Delete(context, sess.ID); err != nil {
		return err
	}

	fresh, err := manager.issue(writer, nil)
	if err != nil {
		return err
	}

	*sess = *fresh
	return nil
}

// # Flash Notices

// Flash queues a one-time notice for the next rendered view.
func (manager *Manager) Flash(context context.Context, sess *Session, message string) error {
	sess.Flashes = append(sess.Flashes, message)
	return manager.save(context, sess)
}

// PopFlashes returns and clears all queued notices. Views call it before
// rendering, so a draft session is persisted here: the page is about to hand
// out its CSRF token.
func (manager *Manager) PopFlashes(context context.Context, sess *Session) ([]string, error) {
	if len(sess.Flashes) == 0 {
		if sess.draft {
			return nil, manager.save(context, sess)
		}
		return nil, nil
	}

	flashes := sess.Flashes
	sess.Flashes = nil
	if err := manager.save(context, sess); err != nil {
		return nil, err
	}
	return flashes, nil
}

// # Internals

// issue creates a brand-new draft session and sends its cookie.
func (manager *Manager) issue(writer http.ResponseWriter, mutate func(*Session)) (*Session, error) {
	sessionID, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return nil, err
	}
	csrfToken, err := sec.GenerateSecureToken(constants.CSRFTokenLength)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        sessionID,
		CSRFToken: csrfToken,
		CreatedAt: time.Now().UTC(),
		draft:     true,
	}
	if mutate != nil {
		mutate(sess)
	}

	cookieValue, err := manager.signer.Sign(sess.ID, manager.options.TTL)
	if err != nil {
		return nil, fmt.Errorf("session_cookie_sign_failed: %w", err)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		MaxAge:   int(manager.options.TTL / time.Second),
		Secure:   manager.options.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess, nil
}

func (manager *Manager) save(context context.Context, sess *Session) error {
	if err := manager.store.Set(context, sess, manager.options.TTL); err != nil {
		return err
	}
	sess.draft = false
	return nil
}
