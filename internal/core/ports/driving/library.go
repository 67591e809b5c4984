package driving

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// FolderReport summarises an AddFolder import.
type FolderReport struct {
	// Added are the newly created documents, in discovery order.
	Added []domain.Document

	// Skipped counts files already present in the library.
	Skipped int
}

// Library is the command surface for managing documents and groups.
//
// AddFolder enumerates direct children only; subdirectories are not
// descended into. Files matching the .pdf extension (case-insensitive)
// are imported, duplicates are skipped and counted rather than
// reported as errors.
type Library interface {
	// AddDocument registers one PDF. title may be empty, in which
	// case the file name (without extension) is used. The new
	// document starts pending. Fails with domain.ErrDuplicatePath if
	// the path is already tracked.
	AddDocument(ctx context.Context, path, title string) (*domain.Document, error)

	// AddFolder imports every PDF that is a direct child of path.
	AddFolder(ctx context.Context, path string) (*FolderReport, error)

	// RemoveDocument deletes a document from the library. The file on
	// disk is untouched.
	RemoveDocument(ctx context.Context, id string) error

	// RenameDocument changes the display title.
	RenameDocument(ctx context.Context, id, title string) error

	// SetRead marks a document read or unread.
	SetRead(ctx context.Context, id string, read bool) error

	// AssignGroup puts a document into a group, or detaches it when
	// groupID is empty.
	AssignGroup(ctx context.Context, id, groupID string) error

	// RetryIndexing returns a failed document to pending so the
	// pipeline can pick it up again.
	RetryIndexing(ctx context.Context, id string) error

	// GetDocument retrieves one document.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// CreateGroup creates a group with a unique, non-empty name.
	CreateGroup(ctx context.Context, name, color, description string) (*domain.Group, error)

	// RenameGroup changes a group's name, enforcing uniqueness.
	RenameGroup(ctx context.Context, id, name string) error

	// RecolorGroup changes a group's colour.
	RecolorGroup(ctx context.Context, id, color string) error

	// DeleteGroup removes a group. Member documents are detached,
	// never deleted.
	DeleteGroup(ctx context.Context, id string) error

	// GetGroups lists all groups.
	GetGroups(ctx context.Context) ([]domain.Group, error)
}
