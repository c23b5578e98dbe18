// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/memdb"
	"github.com/taibuivan/yomira-notes/internal/notes"
	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/guard"
	"github.com/taibuivan/yomira-notes/internal/users/account"
	"github.com/taibuivan/yomira-notes/internal/users/auth"
)

func seed(t *testing.T) (*account.Service, *memdb.DB) {
	t.Helper()

	db := memdb.New()
	ctx := context.Background()

	for _, username := range []string{"alice", "bob"} {
		require.NoError(t, db.Users().Create(ctx, &auth.User{Username: username, Email: username + "@x.com", PasswordHash: "hash"}))
	}
	for _, note := range []notes.Note{
		{Title: "a1", Content: "x", Owner: "alice"},
		{Title: "b1", Content: "x", Owner: "bob"},
		{Title: "a2", Content: "x", Owner: "alice"},
	} {
		require.NoError(t, db.Notes().Create(ctx, &note))
	}

	noteService := notes.NewService(db.Notes())
	return account.NewService(db.Users(), noteService, db.Accounts()), db
}

/*
TestService_Profile runs authentication, ownership and existence in that order.
*/
func TestService_Profile(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		username string
		wantCode string
	}{
		{"owner", "alice", "alice", ""},
		{"anonymous", "", "alice", apperr.CodeUnauthorized},
		{"anonymous_unknown_user", "", "ghost", apperr.CodeUnauthorized},
		{"other_user", "bob", "alice", apperr.CodeForbidden},
		{"other_unknown_user", "bob", "ghost", apperr.CodeForbidden},
		{"stale_identity", "ghost", "ghost", apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := seed(t)

			profile, err := service.Profile(context.Background(), guard.RequestContext{Identity: tt.identity}, tt.username)
			if tt.wantCode != "" {
				assert.True(t, apperr.HasCode(err, tt.wantCode))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "alice", profile.User.Username)
			require.Len(t, profile.Notes, 2)
			assert.Equal(t, "a1", profile.Notes[0].Title)
			assert.Equal(t, "a2", profile.Notes[1].Title)
		})
	}
}

/*
TestService_DeleteAccount removes only the caller's account and notes.
*/
func TestService_DeleteAccount(t *testing.T) {
	service, db := seed(t)
	ctx := context.Background()

	err := service.DeleteAccount(ctx, guard.RequestContext{Identity: "bob"}, "alice")
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.Equal(t, 2, db.UserCount())

	require.NoError(t, service.DeleteAccount(ctx, guard.RequestContext{Identity: "alice"}, "alice"))
	assert.Equal(t, 1, db.UserCount())
	assert.Equal(t, 1, db.NoteCount())

	// A stale session for the deleted user now gets NotFound
	err = service.DeleteAccount(ctx, guard.RequestContext{Identity: "alice"}, "alice")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	_, err = service.Profile(ctx, guard.RequestContext{Identity: "alice"}, "alice")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
