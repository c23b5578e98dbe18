// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-notes/internal/notes"
	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/guard"
	requestutil "github.com/taibuivan/yomira-notes/internal/platform/request"
	"github.com/taibuivan/yomira-notes/internal/platform/respond"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
	"github.com/taibuivan/yomira-notes/internal/users/auth"
	"github.com/taibuivan/yomira-notes/pkg/slice"
)

const viewProfile = "profile"

// # View Payloads

type profileView struct {
	User  *auth.User `json:"user"`
	Notes []noteView `json:"notes"`
}

type noteView struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func toNoteView(note notes.Note) noteView {
	return noteView{ID: note.ID, Title: note.Title, Content: note.Content}
}

// # Definitions & Constructors

// Handler implements the per-user page endpoints.
type Handler struct {
	accountService *Service
	sessions       *session.Manager
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{accountService: service, sessions: sessions}
}

// Routes mounts the account endpoints on router.
//
// # Endpoints
//   - GET  /users/{username}        : Profile with notes.
//   - POST /users/{username}/delete : Delete the account and its notes.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/users/{username}", handler.profile)
	router.Post("/users/{username}/delete", handler.deleteAccount)
}

/*
Profile renders the caller's own profile page.

GET /users/{username}

Response:
  - 200: profile view
  - 303: Redirect to / (anonymous) or to the caller's own profile
  - 404: The user no longer exists
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	profile, err := handler.accountService.Profile(request.Context(), guard.FromRequest(request), username)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	respond.View(writer, request, handler.sessions, http.StatusOK, viewProfile, profileView{
		User:  profile.User,
		Notes: slice.Map(profile.Notes, toNoteView),
	})
}

/*
DeleteAccount removes the caller's account, then ends their session.

POST /users/{username}/delete

Response:
  - 303: Redirect to / with "Account Successfully Deleted!"
  - 404: The user no longer exists (nothing removed)
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	username := requestutil.Param(request, "username")

	if err := handler.accountService.DeleteAccount(ctx, guard.FromRequest(request), username); err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	if sess := ctxutil.GetSession(ctx); sess != nil {
		if err := handler.sessions.Logout(ctx, writer, sess); err != nil {
			respond.Error(writer, request, err)
			return
		}
		if err := handler.sessions.Flash(ctx, sess, MsgAccountDeleted); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "account_deleted", slog.String("username", username))
	respond.Redirect(writer, request, constants.RootPath)
}
