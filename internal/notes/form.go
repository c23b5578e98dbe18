// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notes

import (
	"net/http"
	"strings"

	requestutil "github.com/taibuivan/yomira-notes/internal/platform/request"
	"github.com/taibuivan/yomira-notes/internal/platform/validate"
)

// Form is the add/edit note payload.
type Form struct {
	Title   string
	Content string
}

// ParseForm reads a [Form] from an already parsed POST body.
func ParseForm(request *http.Request) Form {
	return Form{
		Title:   strings.TrimSpace(requestutil.FormValue(request, FieldTitle)),
		Content: requestutil.FormValue(request, FieldContent),
	}
}

// FormFromNote pre-fills the edit form.
func FormFromNote(note *Note) Form {
	return Form{Title: note.Title, Content: note.Content}
}

// Validate requires both fields and caps the title at the column width.
func (form Form) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, form.Title).
		MaxLen(FieldTitle, form.Title, MaxTitleLength).
		Required(FieldContent, form.Content)
	return validator.Err()
}

// Values returns the fields echoed back into the form view.
func (form Form) Values() map[string]string {
	return map[string]string{
		FieldTitle:   form.Title,
		FieldContent: form.Content,
	}
}
