// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/yomira-notes/internal/platform/request"
	"github.com/taibuivan/yomira-notes/internal/platform/respond"
	"github.com/taibuivan/yomira-notes/internal/platform/sec"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

// Sessions loads (or issues) the visitor's session and stores it in the request context.
//
// # Flow
//  1. Resolve the signed cookie through [session.Manager.Load].
//  2. A store outage aborts with HTTP 500; an unknown cookie yields a fresh anonymous session.
//  3. Inject [*session.Session] into the context for guards and handlers.
func Sessions(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sess, err := manager.Load(writer, request)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			ctx := ctxutil.WithSession(request.Context(), sess)
			next.ServeHTTP(writer, request.WithContext(ctx))

			// Login and logout mutate sess in place, so this is the final identity
			reportIdentity(ctx)
		})
	}
}

// RequireCSRF rejects state-changing requests that do not echo the session's
// anti-forgery token.
//
// # Usage
//
// Must be registered in the router AFTER [Sessions].
//
// # Flow
//  1. Safe methods (GET, HEAD, OPTIONS) pass through untouched.
//  2. The token is read from the form field, or from the header for non-form clients.
//  3. On mismatch, flash "Invalid Form Submission" and redirect to the root.
//     A session that was never persisted never rendered a form, so it gets the
//     redirect without a notice and the store stays untouched.
func RequireCSRF(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(writer, request)
				return
			}

			sess := ctxutil.GetSession(request.Context())
			if sess == nil {
				respond.Error(writer, request, apperr.Internal(nil))
				return
			}

			if err := requestutil.ParseForm(writer, request); err != nil {
				respond.Error(writer, request, err)
				return
			}

			token := requestutil.FormValue(request, constants.CSRFFormField)
			if token == "" {
				token = request.Header.Get(constants.HeaderCSRFToken)
			}

			if !sec.TokensEqual(sess.CSRFToken, token) {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "csrf_token_rejected")

				if sess.Persisted() {
					if err := manager.Flash(request.Context(), sess, apperr.CSRFInvalid().Message); err != nil {
						ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "session_flash_failed", slog.Any("error", err))
					}
				}
				respond.Redirect(writer, request, constants.RootPath)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
