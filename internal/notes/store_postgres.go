// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/database/schema"
	"github.com/taibuivan/yomira-notes/internal/platform/dberr"
	"github.com/taibuivan/yomira-notes/internal/platform/postgres"
)

const resourceNote = "Note"

var noteColumns = strings.Join(schema.Notes.Columns(), ", ")

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Conn
}

// NewRepository creates a new PostgreSQL implementation of [Repository].
func NewRepository(db postgres.Conn) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create inserts a note and hydrates its generated ID.

Returns:
  - error: apperr.NotFound("User") when the owner row is gone, or storage errors
*/
func (repository *PostgresRepository) Create(context context.Context, note *Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s`,
		schema.Notes.Table, schema.Notes.Title, schema.Notes.Content, schema.Notes.Owner,
		schema.Notes.ID,
	)

	err := repository.db.QueryRow(context, query, note.Title, note.Content, note.Owner).Scan(&note.ID)
	if err != nil {
		if dberr.ForeignKeyViolation(err) {
			return apperr.NotFound("User")
		}
		return dberr.Wrap(fmt.Errorf("postgres_note_repo_create_failed: %w", err), resourceNote)
	}

	return nil
}

// FindByID loads a single note.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, noteColumns, schema.Notes.Table, schema.Notes.ID)

	note := &Note{}
	err := repository.db.QueryRow(context, query, id).Scan(&note.ID, &note.Title, &note.Content, &note.Owner)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_note_repo_find_by_id_failed: %w", err), resourceNote)
	}

	return note, nil
}

// ListByOwner returns the owner's notes ordered by id, i.e. creation order.
func (repository *PostgresRepository) ListByOwner(context context.Context, owner string) ([]Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		noteColumns, schema.Notes.Table, schema.Notes.Owner, schema.Notes.ID,
	)

	rows, err := repository.db.Query(context, query, owner)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_note_repo_list_failed: %w", err), resourceNote)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Note, error) {
		var note Note
		err := row.Scan(&note.ID, &note.Title, &note.Content, &note.Owner)
		return note, err
	})
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_note_repo_list_scan_failed: %w", err), resourceNote)
	}

	return list, nil
}

// Update overwrites title and content; id and owner are never touched.
func (repository *PostgresRepository) Update(context context.Context, note *Note) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Notes.Table, schema.Notes.Title, schema.Notes.Content, schema.Notes.ID,
	)

	tag, err := repository.db.Exec(context, query, note.ID, note.Title, note.Content)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_note_repo_update_failed: %w", err), resourceNote)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceNote)
	}

	return nil
}

// Delete removes a single note.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Notes.Table, schema.Notes.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_note_repo_delete_failed: %w", err), resourceNote)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceNote)
	}

	return nil
}
