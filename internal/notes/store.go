// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notes

import "context"

// Repository defines the data access contract for notes.
type Repository interface {

	// Create inserts note and assigns its generated ID.
	// A missing owner surfaces as apperr.NotFound("User").
	Create(context context.Context, note *Note) error

	// FindByID returns the note or apperr.NotFound("Note").
	FindByID(context context.Context, id int64) (*Note, error)

	// ListByOwner returns every note of owner in creation order.
	ListByOwner(context context.Context, owner string) ([]Note, error)

	// Update overwrites the title and content of an existing note.
	Update(context context.Context, note *Note) error

	// Delete removes the note or returns apperr.NotFound("Note").
	Delete(context context.Context, id int64) error
}
