// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/dberr"
)

/*
TestWrap classifies storage errors into application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique_violation", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, apperr.CodeConflict},
		{"other_pg_error", &pgconn.PgError{Code: "23503"}, apperr.CodeInternal},
		{"plain", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "User"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "User"))
}

/*
TestUniqueViolation exposes the violated constraint name.
*/
func TestUniqueViolation(t *testing.T) {
	constraint, ok := dberr.UniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}))
	assert.True(t, ok)
	assert.Equal(t, "users_pkey", constraint)

	_, ok = dberr.UniqueViolation(errors.New("other"))
	assert.False(t, ok)
}

/*
TestForeignKeyViolation detects a missing parent row.
*/
func TestForeignKeyViolation(t *testing.T) {
	assert.True(t, dberr.ForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, dberr.ForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, dberr.ForeignKeyViolation(errors.New("other")))
}
