// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard implements the two-tier authorization check shared by every
protected route: first "is somebody logged in", then "is it the owner".

The session identity is trusted as stored; it is never re-read from the user
table. Any future re-validation policy belongs in [FromRequest].

Flow:

	rc := guard.FromRequest(request)
	if _, err := guard.RequireOwner(rc, username); err != nil {
	    guard.Respond(writer, request, sessions, err)
	    return
	}
*/
package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/respond"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

// User-facing notices for guard failures.
const (
	MsgLoginRequired = "You must be logged in to do this action!"
	MsgNotOwner      = "You are not authorized to do this action!"
)

// RequestContext is the authorization-relevant view of one request.
type RequestContext struct {
	// Identity is the logged-in username, or "" for anonymous visitors.
	Identity string
}

// FromRequest builds a [RequestContext] from the session attached by the session middleware.
func FromRequest(request *http.Request) RequestContext {
	return FromContext(request.Context())
}

// FromContext is [FromRequest] for code that only holds a context.
func FromContext(ctx context.Context) RequestContext {
	return RequestContext{Identity: ctxutil.GetIdentity(ctx)}
}

// RequireIdentity returns the acting username, or an UNAUTHORIZED error for anonymous requests.
func RequireIdentity(rc RequestContext) (string, error) {
	if rc.Identity == "" {
		return "", apperr.Unauthorized(MsgLoginRequired)
	}
	return rc.Identity, nil
}

// RequireOwner authenticates first, then fails with FORBIDDEN unless the
// identity equals owner.
func RequireOwner(rc RequestContext, owner string) (string, error) {
	identity, err := RequireIdentity(rc)
	if err != nil {
		return "", err
	}
	if identity != owner {
		return "", apperr.Forbidden(MsgNotOwner)
	}
	return identity, nil
}

// Flasher queues one-time notices on a session.
type Flasher interface {
	Flash(ctx context.Context, sess *session.Session, message string) error
}

/*
Respond maps a guard or service failure onto the HTTP outcome.

  - UNAUTHORIZED: flash the message, 303 to the root.
  - FORBIDDEN: flash the message, 303 to the caller's own profile.
  - Everything else (NOT_FOUND included) goes through [respond.Error].
*/
func Respond(writer http.ResponseWriter, request *http.Request, flasher Flasher, err error) {
	ctx := request.Context()
	appError := apperr.As(err)
	if appError == nil {
		respond.Error(writer, request, err)
		return
	}

	var location string
	switch appError.Code {
	case apperr.CodeUnauthorized:
		location = constants.RootPath
	case apperr.CodeForbidden:
		location = constants.UserPath(ctxutil.GetIdentity(ctx))
	default:
		respond.Error(writer, request, err)
		return
	}

	logger := ctxutil.GetLogger(ctx)
	logger.InfoContext(ctx, "access_denied", slog.String("code", appError.Code))

	if sess := ctxutil.GetSession(ctx); sess != nil && appError.Message != "" {
		if flashErr := flasher.Flash(ctx, sess, appError.Message); flashErr != nil {
			logger.ErrorContext(ctx, "session_flash_failed", slog.Any("error", flashErr))
		}
	}

	respond.Redirect(writer, request, location)
}
