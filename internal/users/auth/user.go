// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user registration, credential checks and the
login/logout entry points.

# Architecture

  - User: the account entity, keyed by its username.
  - Service: orchestrates registration and authentication.
  - Repository: [UserRepository], backed by PostgreSQL in production.
  - Handler: form-driven HTTP endpoints that establish the session identity.
*/
package auth

// # Domain Entities

// User is a registered account. The username is the primary key and never changes.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// # Field Identifiers

// Form field names, shared by validation, views and conflict mapping.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

// # Column Limits

// Limits mirror the users table column widths.
const (
	MaxUsernameLength = 20
	MaxEmailLength    = 50
	MaxNameLength     = 30
)

// # Notices

const (
	MsgUsernameTaken   = "Username is already taken"
	MsgUsernameInvalid = "Use letters, digits, '.', '_' or '-' only"
	MsgEmailTaken      = "Email is already registered"
	MsgBadCredentials  = "Bad name/password"
	MsgRegistered      = "Registered!"
	MsgLoggedIn        = "Logged in!"
	MsgPasswordTooLong = "Maximum 72 bytes"
)
