// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. Rendered
// pages are JSON view documents ([Page]); state-changing flows end in a 303
// redirect; failures share one error envelope.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

// SuccessEnvelope is the JSON envelope for infrastructure responses (health checks).
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// Page is the JSON view document for a rendered page.
type Page struct {
	// Name identifies the view ("register", "profile", ...).
	Name string `json:"page"`
	// Data is the view-specific payload.
	Data interface{} `json:"data,omitempty"`
	// CSRFToken must be echoed back by any form submitted from this page.
	CSRFToken string `json:"csrf_token,omitempty"`
	// Flashes are one-time notices queued by earlier requests.
	Flashes []string `json:"flashes,omitempty"`
}

// FormView is the [Page.Data] payload of a form page.
type FormView struct {
	Values map[string]string   `json:"values"`
	Errors []apperr.FieldError `json:"errors,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Render writes a view document with the given status code.
func Render(writer http.ResponseWriter, statusCode int, page Page) {
	JSON(writer, statusCode, page)
}

// FlashPopper drains the notices queued on a session.
type FlashPopper interface {
	PopFlashes(ctx context.Context, sess *session.Session) ([]string, error)
}

// View renders the named page for the current session: the CSRF token is
// attached and pending flashes are consumed.
func View(writer http.ResponseWriter, request *http.Request, flashes FlashPopper, statusCode int, name string, data interface{}) {
	page := Page{Name: name, Data: data}

	if sess := ctxutil.GetSession(request.Context()); sess != nil {
		page.CSRFToken = sess.CSRFToken

		popped, err := flashes.PopFlashes(request.Context(), sess)
		if err != nil {
			ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "session_flash_pop_failed",
				slog.String("error", err.Error()),
			)
		}
		page.Flashes = popped
	}

	Render(writer, statusCode, page)
}

// NewFormView builds the payload of a form page. A form error (validation,
// conflict or rejected credentials) supplies both the status code and the
// per-field messages.
func NewFormView(values map[string]string, formErr error) (FormView, int) {
	view := FormView{Values: values}
	if appError := apperr.As(formErr); appError != nil {
		view.Errors = appError.Details
		return view, appError.HTTPStatus
	}
	return view, http.StatusOK
}

// Form renders a form page through [View].
func Form(writer http.ResponseWriter, request *http.Request, flashes FlashPopper, name string, values map[string]string, formErr error) {
	view, statusCode := NewFormView(values, formErr)
	View(writer, request, flashes, statusCode, name, view)
}

// Redirect answers with 303 See Other, so browsers follow with a GET.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// Error converts any Go error into a standardized JSON error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "server_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
