// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/sec"
)

// ErrInvalidCredentials is returned for an unknown username and for a wrong
// password alike, so callers cannot tell the two apart.
var ErrInvalidCredentials = apperr.NotFound("User")

// dummyHash is compared against when the username is unknown, keeping the
// response time of both failure paths in the same range.
var dummyHash = sync.OnceValue(func() string {
	hash, err := sec.HashPassword("yomira-notes-timing-equalizer")
	if err != nil {
		panic("auth: failed to build dummy hash: " + err.Error())
	}
	return hash
})

// Service implements user registration and authentication use cases.
type Service struct {
	userRepository UserRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo UserRepository) *Service {
	return &Service{userRepository: userRepo}
}

// # Registration Flow

/*
Register validates uniqueness, hashes the password and persists a new account.

Parameters:
  - context: context.Context
  - form: RegisterForm (already validated)

Returns:
  - *User: Created entity
  - error: Conflict (username or email taken), Validation (password too long) or storage errors
*/
func (service *Service) Register(context context.Context, form RegisterForm) (*User, error) {

	// Friendly pre-checks; the unique constraints still decide under a race.
	if _, err := service.userRepository.FindByUsername(context, form.Username); err == nil {
		return nil, apperr.Conflict(MsgUsernameTaken, apperr.FieldError{Field: FieldUsername, Message: MsgUsernameTaken})
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, form.Email); err == nil {
		return nil, apperr.Conflict(MsgEmailTaken, apperr.FieldError{Field: FieldEmail, Message: MsgEmailTaken})
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(form.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldPassword, Message: MsgPasswordTooLong})
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     form.Username,
		PasswordHash: hashedPassword,
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

/*
Authenticate resolves a username/password pair to its account.

Parameters:
  - context: context.Context
  - username: string
  - password: string (plaintext, never logged)

Returns:
  - *User: The authenticated account
  - error: ErrInvalidCredentials for unknown users and wrong passwords, or storage errors
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		sec.CheckPasswordHash(password, dummyHash())
		return nil, ErrInvalidCredentials
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
