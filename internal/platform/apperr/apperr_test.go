// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
)

/*
TestAppError_As verifies extraction through wrapped error chains.
*/
func TestAppError_As(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("Note"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)
	assert.Equal(t, "Note not found", ae.Message)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)

	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestAppError_Is checks that sentinel AppErrors compare by code and message.
*/
func TestAppError_Is(t *testing.T) {
	sentinel := apperr.NotFound("User")

	assert.ErrorIs(t, fmt.Errorf("wrap: %w", apperr.NotFound("User")), sentinel)
	assert.NotErrorIs(t, apperr.NotFound("Note"), sentinel)
	assert.NotErrorIs(t, apperr.Forbidden("User not found"), sentinel)
}

/*
TestAppError_Internal ensures the cause is kept for logging but hidden from the message.
*/
func TestAppError_Internal(t *testing.T) {
	cause := errors.New("connection refused")
	ae := apperr.Internal(cause)

	assert.Equal(t, "An unexpected error occurred", ae.Error())
	assert.ErrorIs(t, ae, cause)
}

/*
TestIsFormError lists which codes lead to a re-rendered form.
*/
func TestIsFormError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", apperr.ValidationError("bad"), true},
		{"conflict", apperr.Conflict("taken"), true},
		{"forbidden", apperr.Forbidden("no"), false},
		{"unauthorized", apperr.Unauthorized("login"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.IsFormError(tt.err))
		})
	}
}
