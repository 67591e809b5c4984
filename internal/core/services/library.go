package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.Library = (*LibraryService)(nil)

// pdfExtension is matched case-insensitively during folder imports.
const pdfExtension = ".pdf"

// DefaultGroupColor is used when a group is created without a colour.
const DefaultGroupColor = "#4a78c2"

// Enqueuer is the subset of the indexer the library needs: newly
// added or retried documents are handed straight to the pipeline.
type Enqueuer interface {
	Enqueue(ctx context.Context, documentID string) (bool, error)
}

// LibraryService implements the Library command surface over the
// document and group stores. An optional Enqueuer wires new documents
// into the indexing pipeline.
type LibraryService struct {
	docs         driven.DocumentStore
	groups       driven.GroupStore
	enqueuer     Enqueuer
	defaultColor string
	now          func() time.Time
}

// NewLibraryService creates the library command service.
// enqueuer may be nil; documents then stay pending until the pipeline
// picks them up via ResumePending.
func NewLibraryService(docs driven.DocumentStore, groups driven.GroupStore, enqueuer Enqueuer) *LibraryService {
	return &LibraryService{
		docs:         docs,
		groups:       groups,
		enqueuer:     enqueuer,
		defaultColor: DefaultGroupColor,
		now:          time.Now,
	}
}

// SetDefaultGroupColor overrides the colour used when a group is
// created without one. Empty restores the built-in default.
func (s *LibraryService) SetDefaultGroupColor(color string) {
	if color == "" {
		color = DefaultGroupColor
	}
	s.defaultColor = color
}

// AddDocument registers one PDF and queues it for extraction.
func (s *LibraryService) AddDocument(ctx context.Context, path, title string) (*domain.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", domain.ErrInvalidInput)
	}

	if title == "" {
		title = domain.TitleFromPath(abs)
	}

	doc := &domain.Document{
		ID:        domain.DocumentID(abs),
		Path:      abs,
		Title:     title,
		Status:    domain.StatusPending,
		DateAdded: s.now().UTC(),
	}

	if err := s.docs.Insert(ctx, doc); err != nil {
		return nil, err
	}

	s.enqueue(ctx, doc.ID)
	return doc, nil
}

// AddFolder imports every PDF that is a direct child of path.
// Subdirectories are not descended into. Duplicates are skipped and
// counted, not errors.
func (s *LibraryService) AddFolder(ctx context.Context, path string) (*driving.FolderReport, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", domain.ErrInvalidInput)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}

	// Deterministic import order regardless of directory iteration.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	report := &driving.FolderReport{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), pdfExtension) {
			continue
		}

		doc, err := s.AddDocument(ctx, filepath.Join(abs, entry.Name()), "")
		if err != nil {
			if errors.Is(err, domain.ErrDuplicatePath) {
				report.Skipped++
				continue
			}
			return nil, fmt.Errorf("importing %s: %w", entry.Name(), err)
		}
		report.Added = append(report.Added, *doc)
	}

	logger.Info("Imported folder %s: %d added, %d skipped", abs, len(report.Added), report.Skipped)
	return report, nil
}

// RemoveDocument deletes a document row. The file on disk is untouched.
func (s *LibraryService) RemoveDocument(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, id)
}

// RenameDocument changes the display title.
func (s *LibraryService) RenameDocument(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrInvalidInput
	}
	return s.docs.Rename(ctx, id, title)
}

// SetRead marks a document read or unread.
func (s *LibraryService) SetRead(ctx context.Context, id string, read bool) error {
	return s.docs.SetRead(ctx, id, read)
}

// AssignGroup puts a document into a group, or detaches it when
// groupID is empty.
func (s *LibraryService) AssignGroup(ctx context.Context, id, groupID string) error {
	if groupID != "" {
		if _, err := s.groups.Get(ctx, groupID); err != nil {
			return fmt.Errorf("looking up group: %w", err)
		}
	}
	return s.docs.AssignGroup(ctx, id, groupID)
}

// RetryIndexing returns a failed document to pending and re-enqueues it.
func (s *LibraryService) RetryIndexing(ctx context.Context, id string) error {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.Status != domain.StatusFailed {
		return fmt.Errorf("document is %s, only failed documents can be retried: %w",
			doc.Status, domain.ErrInvalidInput)
	}

	if err := s.docs.SetStatus(ctx, id, domain.StatusPending); err != nil {
		return err
	}

	s.enqueue(ctx, id)
	return nil
}

// GetDocument retrieves one document.
func (s *LibraryService) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	return s.docs.Get(ctx, id)
}

// CreateGroup creates a group with a unique, non-empty name.
func (s *LibraryService) CreateGroup(ctx context.Context, name, color, description string) (*domain.Group, error) {
	if color == "" {
		color = s.defaultColor
	}

	group := &domain.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// RenameGroup changes a group's name, enforcing uniqueness.
func (s *LibraryService) RenameGroup(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidInput
	}
	return s.groups.Rename(ctx, id, name)
}

// RecolorGroup changes a group's colour.
func (s *LibraryService) RecolorGroup(ctx context.Context, id, color string) error {
	return s.groups.Recolor(ctx, id, color)
}

// DeleteGroup removes a group. Members are detached, never deleted.
func (s *LibraryService) DeleteGroup(ctx context.Context, id string) error {
	return s.groups.Delete(ctx, id)
}

// GetGroups lists all groups.
func (s *LibraryService) GetGroups(ctx context.Context) ([]domain.Group, error) {
	return s.groups.List(ctx)
}

// enqueue hands a document to the pipeline when one is attached.
// Enqueue failures are logged, not returned: the document stays
// pending and a later ResumePending will pick it up.
func (s *LibraryService) enqueue(ctx context.Context, id string) {
	if s.enqueuer == nil {
		return
	}
	if _, err := s.enqueuer.Enqueue(ctx, id); err != nil {
		logger.Warn("Could not enqueue %s: %v", id, err)
	}
}
