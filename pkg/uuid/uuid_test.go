// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-notes/pkg/uuid"
)

/*
TestNew verifies that generated identifiers are valid and distinct.
*/
func TestNew(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.True(t, uuid.Valid(second))
	assert.NotEqual(t, first, second)
}

/*
TestValid rejects arbitrary strings.
*/
func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid(""))
}
