// Package memory provides in-memory implementations of the driven
// store interfaces, used in tests and anywhere persistence is not
// required.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	byPath    map[string]string

	// FailWrites simulates a storage outage when set; every mutation
	// and Ping returns an error. Tests use it to exercise the
	// pipeline's pause behaviour.
	FailWrites bool
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		byPath:    make(map[string]string),
	}
}

// SetFailWrites toggles the simulated storage outage.
func (s *DocumentStore) SetFailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailWrites = fail
}

func (s *DocumentStore) failing() error {
	if s.FailWrites {
		return fmt.Errorf("storage offline: %w", domain.ErrStorageUnavailable)
	}
	return nil
}

// Insert adds a new document.
func (s *DocumentStore) Insert(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	if _, ok := s.byPath[doc.Path]; ok {
		return fmt.Errorf("inserting %s: %w", doc.Path, domain.ErrDuplicatePath)
	}
	s.documents[doc.ID] = *doc
	s.byPath[doc.Path] = doc.ID
	return nil
}

// Get retrieves a document by id.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByPath retrieves a document by its absolute path.
func (s *DocumentStore) GetByPath(_ context.Context, path string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPath[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.documents[id]
	return &doc, nil
}

// List returns all documents.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for id := range s.documents {
		docs = append(docs, s.documents[id])
	}
	return docs, nil
}

// ListByStatus returns documents in the given status.
func (s *DocumentStore) ListByStatus(_ context.Context, status domain.IndexStatus) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.Document
	for id := range s.documents {
		if s.documents[id].Status == status {
			docs = append(docs, s.documents[id])
		}
	}
	return docs, nil
}

// SetStatus updates the index status. Missing rows are a no-op.
func (s *DocumentStore) SetStatus(_ context.Context, id string, status domain.IndexStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	doc, ok := s.documents[id]
	if !ok {
		return nil
	}
	doc.Status = status
	doc.FailureReason = ""
	s.documents[id] = doc
	return nil
}

// SetIndexResult records a successful extraction. Missing rows are a no-op.
func (s *DocumentStore) SetIndexResult(_ context.Context, id string, res domain.Extraction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	doc, ok := s.documents[id]
	if !ok {
		return nil
	}
	doc.Status = domain.StatusIndexed
	doc.IndexedText = res.Text
	doc.PageCount = res.PageCount
	doc.FailureReason = ""
	s.documents[id] = doc
	return nil
}

// SetFailure records a failed extraction. Missing rows are a no-op.
func (s *DocumentStore) SetFailure(_ context.Context, id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	doc, ok := s.documents[id]
	if !ok {
		return nil
	}
	doc.Status = domain.StatusFailed
	doc.FailureReason = reason
	s.documents[id] = doc
	return nil
}

// SetRead updates the read flag.
func (s *DocumentStore) SetRead(_ context.Context, id string, read bool) error {
	return s.update(id, func(doc *domain.Document) { doc.Read = read })
}

// Rename updates the display title.
func (s *DocumentStore) Rename(_ context.Context, id, title string) error {
	return s.update(id, func(doc *domain.Document) { doc.Title = title })
}

// AssignGroup sets or clears the document's group.
func (s *DocumentStore) AssignGroup(_ context.Context, id, groupID string) error {
	return s.update(id, func(doc *domain.Document) { doc.GroupID = groupID })
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.byPath, doc.Path)
	return nil
}

// ResetStale returns documents stuck in indexing to pending.
func (s *DocumentStore) ResetStale(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, doc := range s.documents {
		if doc.Status == domain.StatusIndexing {
			doc.Status = domain.StatusPending
			doc.FailureReason = ""
			s.documents[id] = doc
			n++
		}
	}
	return n, nil
}

// Ping reports the simulated health state.
func (s *DocumentStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failing()
}

// DetachGroup clears the group reference on every member document.
// The SQLite adapter gets this from its foreign key; here the group
// store calls it explicitly.
func (s *DocumentStore) DetachGroup(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, doc := range s.documents {
		if doc.GroupID == groupID {
			doc.GroupID = ""
			s.documents[id] = doc
		}
	}
}

func (s *DocumentStore) update(id string, fn func(*domain.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing(); err != nil {
		return err
	}
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&doc)
	s.documents[id] = doc
	return nil
}
