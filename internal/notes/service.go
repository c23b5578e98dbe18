// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notes

import (
	"context"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/guard"
)

// Service implements the note use cases. Every method runs the authorization
// guard itself, so no caller can reach the repository unchecked.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Authorization

// AuthorizeAdd checks that the caller may add notes under username.
func (service *Service) AuthorizeAdd(rc guard.RequestContext, username string) error {
	_, err := guard.RequireOwner(rc, username)
	return withForbiddenMessage(err, MsgNotYourNote)
}

// # Use Cases

/*
Create adds a note owned by username.

Check order: authentication, ownership of the path username, then the
existence of that user (enforced by the owner foreign key).

Returns:
  - *Note: The stored note with its ID
  - error: Unauthorized, Forbidden, NotFound("User") or storage errors
*/
func (service *Service) Create(context context.Context, rc guard.RequestContext, username string, form Form) (*Note, error) {
	if err := service.AuthorizeAdd(rc, username); err != nil {
		return nil, err
	}

	note := &Note{Title: form.Title, Content: form.Content, Owner: username}
	if err := service.repository.Create(context, note); err != nil {
		return nil, err
	}

	return note, nil
}

/*
Get loads a note for editing.

Check order: authentication, existence, then ownership.
*/
func (service *Service) Get(context context.Context, rc guard.RequestContext, id int64) (*Note, error) {
	return service.owned(context, rc, id, MsgNotYourNote)
}

// Update overwrites the title and content of a note the caller owns.
func (service *Service) Update(context context.Context, rc guard.RequestContext, id int64, form Form) (*Note, error) {
	note, err := service.owned(context, rc, id, MsgNotYourNote)
	if err != nil {
		return nil, err
	}

	note.Title = form.Title
	note.Content = form.Content
	if err := service.repository.Update(context, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes a note the caller owns and returns what was deleted.
func (service *Service) Delete(context context.Context, rc guard.RequestContext, id int64) (*Note, error) {
	note, err := service.owned(context, rc, id, MsgCannotDelete)
	if err != nil {
		return nil, err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return nil, err
	}

	return note, nil
}

// ListByOwner returns the owner's notes in creation order. Callers authorize first.
func (service *Service) ListByOwner(context context.Context, owner string) ([]Note, error) {
	return service.repository.ListByOwner(context, owner)
}

// # Internals

func (service *Service) owned(context context.Context, rc guard.RequestContext, id int64, forbidden string) (*Note, error) {
	if _, err := guard.RequireIdentity(rc); err != nil {
		return nil, err
	}

	note, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if _, err := guard.RequireOwner(rc, note.Owner); err != nil {
		return nil, withForbiddenMessage(err, forbidden)
	}

	return note, nil
}

// withForbiddenMessage swaps the generic guard notice for a note-specific one.
func withForbiddenMessage(err error, message string) error {
	if apperr.HasCode(err, apperr.CodeForbidden) {
		return apperr.Forbidden(message)
	}
	return err
}
