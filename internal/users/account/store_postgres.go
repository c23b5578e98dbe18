// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/database/schema"
	"github.com/taibuivan/yomira-notes/internal/platform/dberr"
	"github.com/taibuivan/yomira-notes/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Conn
}

// NewRepository creates a new Postgres implementation for account operations.
func NewRepository(db postgres.Conn) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
DeleteAccount removes a user and every note they own in one transaction.

Description: Notes go first so the user row is never referenced when it is
removed. If the user row does not exist the transaction is rolled back.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound("User") or storage errors
*/
func (repository *PostgresRepository) DeleteAccount(context context.Context, username string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_begin_failed: %w", err), "User")
	}

	// No-op once committed
	defer transaction.Rollback(context)

	deleteNotes := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Notes.Table, schema.Notes.Owner)
	if _, err := transaction.Exec(context, deleteNotes, username); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_delete_notes_failed: %w", err), "User")
	}

	deleteUser := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Users.Table, schema.Users.Username)
	tag, err := transaction.Exec(context, deleteUser, username)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_delete_user_failed: %w", err), "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_commit_failed: %w", err), "User")
	}

	return nil
}
