// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	requestutil "github.com/taibuivan/yomira-notes/internal/platform/request"
	"github.com/taibuivan/yomira-notes/internal/platform/sec"
	"github.com/taibuivan/yomira-notes/internal/platform/validate"
)

// # Registration Form

// usernamePattern keeps usernames usable as a single URL path segment.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// validUsername rejects anything that would change meaning inside /users/{username}.
func validUsername(username string) bool {
	return usernamePattern.MatchString(username) && username != "." && username != ".."
}

// RegisterForm is the submitted registration payload.
type RegisterForm struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// ParseRegisterForm reads a [RegisterForm] from an already parsed POST body.
func ParseRegisterForm(request *http.Request) RegisterForm {
	return RegisterForm{
		Username:  NormalizeUsername(requestutil.FormValue(request, FieldUsername)),
		Password:  requestutil.FormValue(request, FieldPassword),
		Email:     strings.TrimSpace(requestutil.FormValue(request, FieldEmail)),
		FirstName: strings.TrimSpace(requestutil.FormValue(request, FieldFirstName)),
		LastName:  strings.TrimSpace(requestutil.FormValue(request, FieldLastName)),
	}
}

// Validate checks presence, the username character set and column limits.
// Errors are reported in field order.
func (form RegisterForm) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldUsername, form.Username)
	if !validator.Fails(FieldUsername) {
		validator.Custom(FieldUsername, !validUsername(form.Username), MsgUsernameInvalid).
			MaxLen(FieldUsername, form.Username, MaxUsernameLength)
	}

	validator.Required(FieldPassword, form.Password).
		MaxBytes(FieldPassword, form.Password, sec.MaxPasswordBytes)

	validator.Required(FieldEmail, form.Email)
	if !validator.Fails(FieldEmail) {
		validator.Email(FieldEmail, form.Email).
			MaxLen(FieldEmail, form.Email, MaxEmailLength)
	}

	validator.Required(FieldFirstName, form.FirstName).
		MaxLen(FieldFirstName, form.FirstName, MaxNameLength)

	validator.Required(FieldLastName, form.LastName).
		MaxLen(FieldLastName, form.LastName, MaxNameLength)

	return validator.Err()
}

// Values returns the fields echoed back into a re-rendered form. The password never is.
func (form RegisterForm) Values() map[string]string {
	return map[string]string{
		FieldUsername:  form.Username,
		FieldEmail:     form.Email,
		FieldFirstName: form.FirstName,
		FieldLastName:  form.LastName,
	}
}

// # Login Form

// LoginForm is the submitted credential pair.
type LoginForm struct {
	Username string
	Password string
}

// ParseLoginForm reads a [LoginForm] from an already parsed POST body.
func ParseLoginForm(request *http.Request) LoginForm {
	return LoginForm{
		Username: NormalizeUsername(requestutil.FormValue(request, FieldUsername)),
		Password: requestutil.FormValue(request, FieldPassword),
	}
}

// Validate only checks presence; wrong credentials are the service's concern.
func (form LoginForm) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, form.Username).
		Required(FieldPassword, form.Password)
	return validator.Err()
}

// Values returns the fields echoed back into a re-rendered form.
func (form LoginForm) Values() map[string]string {
	return map[string]string{FieldUsername: form.Username}
}

// # Normalization

// NormalizeUsername trims surrounding space and applies Unicode NFC, so that
// visually identical names typed on different keyboards resolve to one account.
func NormalizeUsername(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
