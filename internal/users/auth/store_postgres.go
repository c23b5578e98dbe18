// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/database/schema"
	"github.com/taibuivan/yomira-notes/internal/platform/dberr"
	"github.com/taibuivan/yomira-notes/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db postgres.Conn
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.Conn) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = strings.Join(schema.Users.Columns(), ", ")

/*
Create persists a new user record into the users table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist, password already hashed)

Returns:
  - error: apperr.Conflict naming the duplicate field, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.Users.Table, userColumns,
	)

	_, err := repository.db.Exec(context, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
	)
	if err != nil {
		return conflictField(dberr.Wrap(fmt.Errorf("postgres_user_repo_create_failed: %w", err), "User"))
	}

	return nil
}

/*
FindByUsername retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.Users.Table, schema.Users.Username)
	return repository.findOne(context, "find_by_username", query, username)
}

/*
FindByEmail retrieves a user record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.Users.Table, schema.Users.Email)
	return repository.findOne(context, "find_by_email", query, email)
}

func (repository *PostgresUserRepository) findOne(context context.Context, operation, query string, argument string) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(context, query, argument).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_user_repo_%s_failed: %w", operation, err), "User")
	}

	return user, nil
}

// conflictField attaches the form field implied by the violated constraint.
func conflictField(err error) error {
	appError := apperr.As(err)
	if appError == nil || appError.Code != apperr.CodeConflict {
		return err
	}

	field, message := FieldUsername, MsgUsernameTaken
	if appError.Cause != nil && appError.Cause.Error() == schema.Users.EmailKey {
		field, message = FieldEmail, MsgEmailTaken
	}

	conflict := apperr.Conflict(message, apperr.FieldError{Field: field, Message: message})
	conflict.Cause = appError.Cause
	return conflict
}
