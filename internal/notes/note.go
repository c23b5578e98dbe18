// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notes implements the personal text notes owned by each account.

A note belongs to exactly one user for its whole life: its id and owner are
fixed at creation and only the title and content can be edited, and only by
the owner.
*/
package notes

// Note is a single titled text note.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// Form field names.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// MaxTitleLength mirrors the notes.title column width.
const MaxTitleLength = 100

// Notices shown after note actions.
const (
	MsgNotYourNote  = "This is not your note."
	MsgCannotDelete = "You can't delete that note!"
	MsgNoteDeleted  = "Note Successfully Deleted!"
)
