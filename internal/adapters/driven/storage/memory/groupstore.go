package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
)

// Ensure GroupStore implements the interface.
var _ driven.GroupStore = (*GroupStore)(nil)

// GroupStore is an in-memory implementation of driven.GroupStore.
// When a document store is attached, deleting a group detaches its
// members, mirroring the SQLite foreign key behaviour.
type GroupStore struct {
	mu     sync.RWMutex
	groups map[string]domain.Group
	docs   *DocumentStore
}

// NewGroupStore creates a new in-memory group store. docs may be nil.
func NewGroupStore(docs *DocumentStore) *GroupStore {
	return &GroupStore{
		groups: make(map[string]domain.Group),
		docs:   docs,
	}
}

// Create adds a new group.
func (s *GroupStore) Create(_ context.Context, group *domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.groups {
		if s.groups[id].Name == group.Name {
			return fmt.Errorf("creating group %q: %w", group.Name, domain.ErrDuplicateName)
		}
	}
	s.groups[group.ID] = *group
	return nil
}

// Get retrieves a group by id.
func (s *GroupStore) Get(_ context.Context, id string) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &group, nil
}

// List returns all groups ordered by name.
func (s *GroupStore) List(_ context.Context) ([]domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]domain.Group, 0, len(s.groups))
	for id := range s.groups {
		groups = append(groups, s.groups[id])
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

// Rename updates the group name, enforcing uniqueness.
func (s *GroupStore) Rename(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[id]
	if !ok {
		return domain.ErrNotFound
	}
	for other := range s.groups {
		if other != id && s.groups[other].Name == name {
			return fmt.Errorf("renaming group to %q: %w", name, domain.ErrDuplicateName)
		}
	}
	group.Name = name
	s.groups[id] = group
	return nil
}

// Recolor updates the group colour.
func (s *GroupStore) Recolor(_ context.Context, id, color string) error {
	return s.update(id, func(g *domain.Group) { g.Color = color })
}

// Redescribe updates the group description.
func (s *GroupStore) Redescribe(_ context.Context, id, description string) error {
	return s.update(id, func(g *domain.Group) { g.Description = description })
}

// Delete removes a group and detaches its members.
func (s *GroupStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.groups[id]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.groups, id)
	docs := s.docs
	s.mu.Unlock()

	if docs != nil {
		docs.DetachGroup(id)
	}
	return nil
}

func (s *GroupStore) update(id string, fn func(*domain.Group)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&group)
	s.groups[id] = group
	return nil
}
