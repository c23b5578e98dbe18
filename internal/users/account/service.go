// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/yomira-notes/internal/platform/guard"
	"github.com/taibuivan/yomira-notes/internal/users/auth"
)

// Service implements the profile and account-deletion use cases.
type Service struct {
	users    auth.UserRepository
	notes    NoteLister
	accounts Repository
}

// NewService constructs a new account [Service].
func NewService(users auth.UserRepository, notes NoteLister, accounts Repository) *Service {
	return &Service{users: users, notes: notes, accounts: accounts}
}

/*
Profile loads the profile page of username.

Check order: authentication, ownership of the path username, then existence.

Returns:
  - *Profile: The user and their notes in creation order
  - error: Unauthorized, Forbidden, NotFound or storage errors
*/
func (service *Service) Profile(context context.Context, rc guard.RequestContext, username string) (*Profile, error) {
	if _, err := guard.RequireOwner(rc, username); err != nil {
		return nil, err
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	list, err := service.notes.ListByOwner(context, username)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Notes: list}, nil
}

// DeleteAccount removes the caller's own account and notes.
func (service *Service) DeleteAccount(context context.Context, rc guard.RequestContext, username string) error {
	if _, err := guard.RequireOwner(rc, username); err != nil {
		return err
	}
	return service.accounts.DeleteAccount(context, username)
}
