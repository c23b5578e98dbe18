// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and form body
decoding, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-notes/internal/platform/apperr"
	"github.com/taibuivan/yomira-notes/internal/platform/validate"
)

// maxFormBytes caps urlencoded bodies; note content is the largest field.
const maxFormBytes = 1 << 20

/*
ParseForm reads an urlencoded body into request.PostForm.

Returns:
  - error: a VALIDATION_ERROR if the body is malformed or too large
*/
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseForm(); err != nil {
		return validate.FieldError("form", "Malformed form submission")
	}
	return nil
}

/*
FormValue returns a posted form field. Query-string values are ignored.
*/
func FormValue(request *http.Request, name string) string {
	return request.PostFormValue(name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a named URL parameter as a positive integer id.

Returns:
  - int64: Parsed id
  - error: apperr.NotFound(resource) if the segment is not a positive integer,
    matching how a router-level int converter would answer
*/
func Int64Param(request *http.Request, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}
