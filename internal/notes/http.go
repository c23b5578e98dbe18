// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/guard"
	requestutil "github.com/taibuivan/yomira-notes/internal/platform/request"
	"github.com/taibuivan/yomira-notes/internal/platform/respond"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

// View names rendered by this handler.
const (
	viewAddNote  = "add_note"
	viewEditNote = "edit_note"
)

// formView is the payload of the add and edit pages.
type formView struct {
	respond.FormView
	Owner  string `json:"owner"`
	NoteID int64  `json:"note_id,omitempty"`
}

// Handler implements the note HTTP endpoints.
type Handler struct {
	noteService *Service
	sessions    *session.Manager
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{noteService: service, sessions: sessions}
}

// Routes mounts the note endpoints on router.
//
// # Endpoints
//   - GET|POST /users/{username}/notes/add : Add a note to the caller's profile.
//   - GET|POST /notes/{id}/update          : Edit a note the caller owns.
//   - POST     /notes/{id}/delete          : Delete a note the caller owns.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/users/{username}/notes/add", handler.addForm)
	router.Post("/users/{username}/notes/add", handler.add)
	router.Get("/notes/{id}/update", handler.editForm)
	router.Post("/notes/{id}/update", handler.edit)
	router.Post("/notes/{id}/delete", handler.delete)
}

// # Create

func (handler *Handler) addForm(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.noteService.AuthorizeAdd(guard.FromRequest(request), username); err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	handler.renderForm(writer, request, viewAddNote, username, 0, Form{}, nil)
}

/*
Add creates a note under the path username.

POST /users/{username}/notes/add

Response:
  - 303: Redirect to /users/{username}
  - 303: Redirect to / (anonymous) or to the caller's own profile (not the owner)
  - 400: Form re-rendered with validation errors
  - 404: The user no longer exists
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	rc := guard.FromRequest(request)
	username := requestutil.Param(request, "username")

	if err := handler.noteService.AuthorizeAdd(rc, username); err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	form := ParseForm(request)
	if err := form.Validate(); err != nil {
		handler.renderForm(writer, request, viewAddNote, username, 0, form, err)
		return
	}

	note, err := handler.noteService.Create(ctx, rc, username, form)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "note_created",
		slog.Int64("note_id", note.ID),
		slog.String("owner", note.Owner),
	)
	respond.Redirect(writer, request, constants.UserPath(username))
}

// # Update

func (handler *Handler) editForm(writer http.ResponseWriter, request *http.Request) {
	rc, id, ok := handler.resolve(writer, request)
	if !ok {
		return
	}

	note, err := handler.noteService.Get(request.Context(), rc, id)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	handler.renderForm(writer, request, viewEditNote, note.Owner, note.ID, FormFromNote(note), nil)
}

/*
Edit overwrites the title and content of a note.

POST /notes/{id}/update

Response:
  - 303: Redirect to /users/{owner}
  - 400: Form re-rendered with validation errors
  - 404: Unknown or malformed note id
*/
func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	rc, id, ok := handler.resolve(writer, request)
	if !ok {
		return
	}

	current, err := handler.noteService.Get(ctx, rc, id)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	form := ParseForm(request)
	if err := form.Validate(); err != nil {
		handler.renderForm(writer, request, viewEditNote, current.Owner, current.ID, form, err)
		return
	}

	note, err := handler.noteService.Update(ctx, rc, id, form)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "note_updated", slog.Int64("note_id", note.ID))
	respond.Redirect(writer, request, constants.UserPath(note.Owner))
}

// # Delete

/*
Delete removes a note.

POST /notes/{id}/delete

Response:
  - 303: Redirect to the caller's profile with "Note Successfully Deleted!"
  - 404: Unknown or malformed note id
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	rc, id, ok := handler.resolve(writer, request)
	if !ok {
		return
	}

	note, err := handler.noteService.Delete(ctx, rc, id)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return
	}

	if sess := ctxutil.GetSession(ctx); sess != nil {
		if err := handler.sessions.Flash(ctx, sess, MsgNoteDeleted); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "note_deleted", slog.Int64("note_id", note.ID))
	respond.Redirect(writer, request, constants.UserPath(rc.Identity))
}

// # Helpers

// resolve authenticates the caller before parsing the note id, so an anonymous
// visitor is sent to log in even for ids that do not exist.
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) (guard.RequestContext, int64, bool) {
	rc := guard.FromRequest(request)

	if _, err := guard.RequireIdentity(rc); err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return rc, 0, false
	}

	id, err := requestutil.Int64Param(request, "id", resourceNote)
	if err != nil {
		guard.Respond(writer, request, handler.sessions, err)
		return rc, 0, false
	}

	return rc, id, true
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, name, owner string, noteID int64, form Form, formErr error) {
	view, statusCode := respond.NewFormView(form.Values(), formErr)
	respond.View(writer, request, handler.sessions, statusCode, name, formView{
		FormView: view,
		Owner:    owner,
		NoteID:   noteID,
	})
}
