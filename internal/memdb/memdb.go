// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memdb provides in-process implementations of every repository
contract, backed by a single mutex-guarded dataset.

It enforces the same rules the PostgreSQL schema does (unique username and
email, notes require an existing owner, ids ascend in creation order) so
service and HTTP tests observe identical semantics without a database.
*/
package memdb

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/yomira-notes/internal/notes"
	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/users/account"
	"github.com/taibuivan/yomira-notes/internal/users/auth"
)

// DB is the shared dataset. Use [DB.Users], [DB.Notes] and [DB.Accounts] to
// obtain the repository views.
type DB struct {
	mu     sync.Mutex
	users  map[string]auth.User
	notes  map[int64]notes.Note
	nextID int64
}

// New returns an empty dataset.
func New() *DB {
	return &DB{
		users: make(map[string]auth.User),
		notes: make(map[int64]notes.Note),
	}
}

// Users returns the [auth.UserRepository] view.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Notes returns the [notes.Repository] view.
func (db *DB) Notes() *NoteStore { return &NoteStore{db: db} }

// Accounts returns the [account.Repository] view.
func (db *DB) Accounts() *AccountStore { return &AccountStore{db: db} }

// # Users

// UserStore implements [auth.UserRepository].
type UserStore struct{ db *DB }

var _ auth.UserRepository = (*UserStore)(nil)

func (store *UserStore) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	user, ok := store.db.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (store *UserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	for _, user := range store.db.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *UserStore) Create(_ context.Context, user *auth.User) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, taken := store.db.users[user.Username]; taken {
		return apperr.Conflict(auth.MsgUsernameTaken, apperr.FieldError{Field: auth.FieldUsername, Message: auth.MsgUsernameTaken})
	}
	for _, existing := range store.db.users {
		if existing.Email == user.Email {
			return apperr.Conflict(auth.MsgEmailTaken, apperr.FieldError{Field: auth.FieldEmail, Message: auth.MsgEmailTaken})
		}
	}

	store.db.users[user.Username] = *user
	return nil
}

// # Notes

// NoteStore implements [notes.Repository].
type NoteStore struct{ db *DB }

var _ notes.Repository = (*NoteStore)(nil)

func (store *NoteStore) Create(_ context.Context, note *notes.Note) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.users[note.Owner]; !ok {
		return apperr.NotFound("User")
	}

	store.db.nextID++
	note.ID = store.db.nextID
	store.db.notes[note.ID] = *note
	return nil
}

func (store *NoteStore) FindByID(_ context.Context, id int64) (*notes.Note, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	note, ok := store.db.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note")
	}
	return &note, nil
}

func (store *NoteStore) ListByOwner(_ context.Context, owner string) ([]notes.Note, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	list := []notes.Note{}
	for _, note := range store.db.notes {
		if note.Owner == owner {
			list = append(list, note)
		}
	}
	slices.SortFunc(list, func(a, b notes.Note) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}

func (store *NoteStore) Update(_ context.Context, note *notes.Note) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	existing, ok := store.db.notes[note.ID]
	if !ok {
		return apperr.NotFound("Note")
	}
	existing.Title = note.Title
	existing.Content = note.Content
	store.db.notes[note.ID] = existing
	return nil
}

func (store *NoteStore) Delete(_ context.Context, id int64) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.notes[id]; !ok {
		return apperr.NotFound("Note")
	}
	delete(store.db.notes, id)
	return nil
}

// # Accounts

// AccountStore implements [account.Repository].
type AccountStore struct{ db *DB }

var _ account.Repository = (*AccountStore)(nil)

// DeleteAccount removes the user's notes and the user; a missing user removes nothing.
func (store *AccountStore) DeleteAccount(_ context.Context, username string) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if _, ok := store.db.users[username]; !ok {
		return apperr.NotFound("User")
	}

	for id, note := range store.db.notes {
		if note.Owner == username {
			delete(store.db.notes, id)
		}
	}
	delete(store.db.users, username)
	return nil
}

// # Inspection

// NoteCount reports the number of stored notes.
func (db *DB) NoteCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.notes)
}

// UserCount reports the number of stored users.
func (db *DB) UserCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users)
}
