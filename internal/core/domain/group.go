package domain

import (
	"strings"
	"time"
)

// Group is a user-defined category for documents. A document belongs
// to at most one group at a time. Deleting a group detaches its
// members; it never deletes documents.
type Group struct {
	// ID is a generated unique identifier.
	ID string

	// Name is the unique, non-empty display name.
	Name string

	// Color is the badge colour rendered by consuming surfaces.
	Color string

	// Description is optional free text.
	Description string

	// CreatedAt is when the group was created.
	CreatedAt time.Time
}

// Validate checks group fields that the store cannot enforce.
func (g Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}
