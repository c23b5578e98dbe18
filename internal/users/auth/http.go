// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/respond"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

// View names rendered by this handler.
const (
	viewRegister = "register"
	viewLogin    = "login"
)

// # Definitions & Constructors

// Handler implements the identity entry points: register, login and logout.
type Handler struct {
	authService *Service
	sessions    *session.Manager
}

// NewHandler constructs a new [Handler] with its service and session dependencies.
func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{authService: service, sessions: sessions}
}

// Routes mounts the identity endpoints on router.
//
// # Endpoints
//   - GET|POST /register : Registration form and submission.
//   - GET|POST /login    : Login form and submission.
//   - POST     /logout   : Clears the session identity.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/register", handler.registerForm)
	router.Post("/register", handler.register)
	router.Get("/login", handler.loginForm)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
}

// # Registration

func (handler *Handler) registerForm(writer http.ResponseWriter, request *http.Request) {
	respond.Form(writer, request, handler.sessions, viewRegister, RegisterForm{}.Values(), nil)
}

/*
Register handles the creation of a new user account.

POST /register

Description: Validates the form, persists the account, logs the new user in
and sends them to their profile.

Response:
  - 303: Redirect to /users/{username}
  - 400: Form re-rendered with validation errors
  - 409: Form re-rendered, username or email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	form := ParseRegisterForm(request)

	if err := form.Validate(); err != nil {
		respond.Form(writer, request, handler.sessions, viewRegister, form.Values(), err)
		return
	}

	user, err := handler.authService.Register(ctx, form)
	if err != nil {
		if apperr.IsFormError(err) {
			respond.Form(writer, request, handler.sessions, viewRegister, form.Values(), err)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	if !handler.establish(writer, request, user.Username, MsgRegistered) {
		return
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_registered", slog.String("username", user.Username))
	respond.Redirect(writer, request, constants.UserPath(user.Username))
}

// # Login & Logout

func (handler *Handler) loginForm(writer http.ResponseWriter, request *http.Request) {
	respond.Form(writer, request, handler.sessions, viewLogin, LoginForm{}.Values(), nil)
}

/*
Login authenticates a user and establishes the session identity.

POST /login

Response:
  - 303: Redirect to /users/{username}
  - 400: Form re-rendered, a field is missing
  - 401: Form re-rendered with "Bad name/password"
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	form := ParseLoginForm(request)

	if err := form.Validate(); err != nil {
		respond.Form(writer, request, handler.sessions, viewLogin, form.Values(), err)
		return
	}

	user, err := handler.authService.Authenticate(ctx, form.Username, form.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "login_failed", slog.String("username", form.Username))

		failure := apperr.Unauthorized(MsgBadCredentials)
		failure.Details = []apperr.FieldError{{Field: FieldUsername, Message: MsgBadCredentials}}
		respond.Form(writer, request, handler.sessions, viewLogin, form.Values(), failure)
		return
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !handler.establish(writer, request, user.Username, MsgLoggedIn) {
		return
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_logged_in", slog.String("username", user.Username))
	respond.Redirect(writer, request, constants.UserPath(user.Username))
}

/*
Logout clears the session identity unconditionally.

POST /logout

Response:
  - 303: Redirect to /
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if sess := ctxutil.GetSession(ctx); sess != nil {
		previous := sess.Username
		if err := handler.sessions.Logout(ctx, writer, sess); err != nil {
			respond.Error(writer, request, err)
			return
		}
		if previous != "" {
			ctxutil.GetLogger(ctx).InfoContext(ctx, "user_logged_out", slog.String("username", previous))
		}
	}

	respond.Redirect(writer, request, constants.RootPath)
}

// establish rotates the session onto username and queues notice.
// It reports false after writing an error response.
func (handler *Handler) establish(writer http.ResponseWriter, request *http.Request, username, notice string) bool {
	ctx := request.Context()

	sess := ctxutil.GetSession(ctx)
	if sess == nil {
		respond.Error(writer, request, apperr.Internal(errors.New("session middleware not installed")))
		return false
	}

	if err := handler.sessions.Login(ctx, writer, sess, username); err != nil {
		respond.Error(writer, request, err)
		return false
	}

	if err := handler.sessions.Flash(ctx, sess, notice); err != nil {
		respond.Error(writer, request, err)
		return false
	}

	return true
}
