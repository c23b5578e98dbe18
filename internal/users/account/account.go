// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account serves the per-user pages: the profile with its notes, and
account deletion.

# Architecture

  - Domain: depends on the auth package for the User entity and on the notes
    package for the profile's note list.
  - Security: every use case is scoped to the path username and passes through
    the authorization guard before any lookup.
*/
package account

import (
	"context"

	"github.com/taibuivan/yomira-notes/internal/notes"
	"github.com/taibuivan/yomira-notes/internal/users/auth"
)

// Profile is what the profile page shows: the user (without password) and their notes.
type Profile struct {
	User  *auth.User
	Notes []notes.Note
}

// MsgAccountDeleted is flashed on the fresh session after deletion.
const MsgAccountDeleted = "Account Successfully Deleted!"

// # Repository Contracts

// Repository defines the persistence contract for whole-account operations.
type Repository interface {

	/*
		DeleteAccount removes the user's notes and then the user, atomically.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: apperr.NotFound("User") (nothing is removed) or storage errors
	*/
	DeleteAccount(context context.Context, username string) error
}

// NoteLister is the slice of the notes service the profile needs.
type NoteLister interface {
	ListByOwner(context context.Context, owner string) ([]notes.Note, error)
}
