// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/users/auth"
)

var userColumns = []string{"username", "password", "email", "first_name", "last_name"}

func newMockRepository(t *testing.T) (*auth.PostgresUserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return auth.NewUserRepository(mock), mock
}

/*
TestPostgresUserRepository_Create maps unique violations onto form fields.
*/
func TestPostgresUserRepository_Create(t *testing.T) {
	user := &auth.User{Username: "alice", PasswordHash: "hash", Email: "alice@x.com", FirstName: "Alice", LastName: "L"}

	tests := []struct {
		name     string
		dbErr    error
		wantCode string
		field    string
	}{
		{"inserted", nil, "", ""},
		{"duplicate_username", &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}, apperr.CodeConflict, auth.FieldUsername},
		{"duplicate_email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, apperr.CodeConflict, auth.FieldEmail},
		{"connection_lost", errors.New("conn closed"), apperr.CodeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, mock := newMockRepository(t)

			expectation := mock.ExpectExec("INSERT INTO users").
				WithArgs("alice", "hash", "alice@x.com", "Alice", "L")
			if tt.dbErr != nil {
				expectation.WillReturnError(tt.dbErr)
			} else {
				expectation.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err := repository.Create(context.Background(), user)
			if tt.wantCode == "" {
				require.NoError(t, err)
			} else {
				assert.True(t, apperr.HasCode(err, tt.wantCode))
				if tt.field != "" {
					assert.Equal(t, []string{tt.field}, fieldsOf(err))
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresUserRepository_FindByUsername hydrates the entity or reports NotFound.
*/
func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	repository, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("alice", "hash", "alice@x.com", "Alice", "L"))

	user, err := repository.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &auth.User{Username: "alice", PasswordHash: "hash", Email: "alice@x.com", FirstName: "Alice", LastName: "L"}, user)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err = repository.FindByUsername(ctx, "ghost")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_FindByEmail looks users up by their unique email.
*/
func TestPostgresUserRepository_FindByEmail(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("alice@x.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("alice", "hash", "alice@x.com", "Alice", "L"))

	user, err := repository.FindByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
