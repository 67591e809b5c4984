package driven

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// DocumentStore persists documents. Backed by SQLite.
//
// Every mutation is atomic with respect to concurrent callers.
// Implementations return domain errors (ErrNotFound, ErrDuplicatePath)
// for business failures and wrapped infrastructure errors otherwise.
type DocumentStore interface {
	// Insert adds a new document. Fails with domain.ErrDuplicatePath
	// if the path is already present.
	Insert(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by id.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByPath retrieves a document by its absolute path.
	GetByPath(ctx context.Context, path string) (*domain.Document, error)

	// List returns all documents.
	List(ctx context.Context) ([]domain.Document, error)

	// ListByStatus returns documents in the given index status.
	ListByStatus(ctx context.Context, status domain.IndexStatus) ([]domain.Document, error)

	// SetStatus updates the index status. A missing row is a no-op,
	// not an error: the document may have been removed concurrently.
	SetStatus(ctx context.Context, id string, status domain.IndexStatus) error

	// SetIndexResult records a successful extraction and transitions
	// the document to indexed. No-op if the row was deleted.
	SetIndexResult(ctx context.Context, id string, res domain.Extraction) error

	// SetFailure records a failed extraction and transitions the
	// document to failed. No-op if the row was deleted.
	SetFailure(ctx context.Context, id, reason string) error

	// SetRead updates the read flag.
	SetRead(ctx context.Context, id string, read bool) error

	// Rename updates the display title.
	Rename(ctx context.Context, id, title string) error

	// AssignGroup sets the document's group, or detaches it when
	// groupID is empty.
	AssignGroup(ctx context.Context, id, groupID string) error

	// Delete removes a document.
	Delete(ctx context.Context, id string) error

	// ResetStale returns documents stuck in indexing to pending.
	// Called once when the store opens, to recover from an unclean
	// shutdown.
	ResetStale(ctx context.Context) (int, error)

	// Ping verifies the store is reachable. The pipeline uses it to
	// confirm health before resuming after a storage failure.
	Ping(ctx context.Context) error
}

// GroupStore persists groups.
type GroupStore interface {
	// Create adds a new group. Fails with domain.ErrDuplicateName if
	// the name is taken.
	Create(ctx context.Context, group *domain.Group) error

	// Get retrieves a group by id.
	Get(ctx context.Context, id string) (*domain.Group, error)

	// List returns all groups.
	List(ctx context.Context) ([]domain.Group, error)

	// Rename updates the group name, enforcing uniqueness.
	Rename(ctx context.Context, id, name string) error

	// Recolor updates the group colour.
	Recolor(ctx context.Context, id, color string) error

	// Redescribe updates the group description.
	Redescribe(ctx context.Context, id, description string) error

	// Delete removes a group, detaching member documents. Documents
	// themselves are never deleted.
	Delete(ctx context.Context, id string) error
}
