// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Session verifies that the session and its identity can be stored in context.
*/
func TestContext_Session(t *testing.T) {
	ctx := context.Background()

	// 1. Initially there is no session and no identity
	assert.Nil(t, ctxutil.GetSession(ctx))
	assert.Empty(t, ctxutil.GetIdentity(ctx))

	// 2. Anonymous session
	sess := &session.Session{ID: "sid-1", CSRFToken: "tok"}
	ctx = ctxutil.WithSession(ctx, sess)
	require.NotNil(t, ctxutil.GetSession(ctx))
	assert.Empty(t, ctxutil.GetIdentity(ctx))

	// 3. Identity is read through the same pointer
	sess.Username = "alice"
	assert.Equal(t, "alice", ctxutil.GetIdentity(ctx))
}
