// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notes_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/notes"
	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
)

var noteColumns = []string{"id", "title", "content", "owner"}

func newMockRepository(t *testing.T) (*notes.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return notes.NewRepository(mock), mock
}

/*
TestPostgresRepository_Create hydrates the generated id and maps a missing owner.
*/
func TestPostgresRepository_Create(t *testing.T) {
	repository, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs("T", "C", "alice").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	note := &notes.Note{Title: "T", Content: "C", Owner: "alice"}
	require.NoError(t, repository.Create(ctx, note))
	assert.Equal(t, int64(7), note.ID)

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs("T", "C", "ghost").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "notes_owner_fkey"})

	err := repository.Create(ctx, &notes.Note{Title: "T", Content: "C", Owner: "ghost"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_FindByID reports NotFound for unknown ids.
*/
func TestPostgresRepository_FindByID(t *testing.T) {
	repository, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(int64(7), "T", "C", "alice"))

	note, err := repository.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, &notes.Note{ID: 7, Title: "T", Content: "C", Owner: "alice"}, note)

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id").
		WithArgs(int64(8)).
		WillReturnError(pgx.ErrNoRows)

	_, err = repository.FindByID(ctx, 8)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_ListByOwner orders by id.
*/
func TestPostgresRepository_ListByOwner(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE owner = \\$1 ORDER BY id").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(noteColumns).
			AddRow(int64(1), "first", "a", "alice").
			AddRow(int64(2), "second", "b", "alice"))

	list, err := repository.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, int64(2), list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_UpdateDelete maps zero affected rows to NotFound.
*/
func TestPostgresRepository_UpdateDelete(t *testing.T) {
	repository, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE notes SET title").
		WithArgs(int64(7), "T2", "C2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE notes SET title").
		WithArgs(int64(9), "T2", "C2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM notes WHERE id").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM notes WHERE id").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repository.Update(ctx, &notes.Note{ID: 7, Title: "T2", Content: "C2"}))
	assert.True(t, apperr.HasCode(repository.Update(ctx, &notes.Note{ID: 9, Title: "T2", Content: "C2"}), apperr.CodeNotFound))
	require.NoError(t, repository.Delete(ctx, 7))
	assert.True(t, apperr.HasCode(repository.Delete(ctx, 7), apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
