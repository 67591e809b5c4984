package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.Query = (*QueryService)(nil)

// QueryService is the read side of the library. Each operation reads
// the store once and computes its result as a pure function of that
// snapshot, so pipeline writes show up immediately.
type QueryService struct {
	docs   driven.DocumentStore
	groups driven.GroupStore
}

// NewQueryService creates the read-side service.
func NewQueryService(docs driven.DocumentStore, groups driven.GroupStore) *QueryService {
	return &QueryService{docs: docs, groups: groups}
}

// Search matches query case-insensitively against titles always, and
// against extracted text only for indexed documents. An empty query
// matches everything.
func (s *QueryService) Search(ctx context.Context, query string, sortKey domain.SortKey, filter domain.ReadFilter) ([]domain.Document, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matched := docs[:0:0]
	for i := range docs {
		if matches(&docs[i], needle) {
			matched = append(matched, docs[i])
		}
	}

	matched = applyFilter(matched, filter)
	sortDocuments(matched, sortKey)
	return matched, nil
}

// List returns documents ordered by sortKey and restricted by filter.
func (s *QueryService) List(ctx context.Context, sortKey domain.SortKey, filter domain.ReadFilter) ([]domain.Document, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs = applyFilter(docs, filter)
	sortDocuments(docs, sortKey)
	return docs, nil
}

// Statistics returns one consistent snapshot of library counts.
func (s *QueryService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	stats := &domain.Statistics{
		Total:          len(docs),
		PerGroupCounts: make(map[string]int),
	}
	for i := range docs {
		switch docs[i].Status {
		case domain.StatusIndexed:
			stats.Indexed++
		case domain.StatusPending, domain.StatusIndexing:
			stats.Pending++
		case domain.StatusFailed:
			stats.Failed++
		}
		if docs[i].Read {
			stats.ReadCount++
		}
		if docs[i].GroupID != "" {
			stats.PerGroupCounts[docs[i].GroupID]++
		}
	}
	return stats, nil
}

// matches reports whether a document matches the lowered needle.
// Titles always participate; extracted text only once indexed, so
// pending and failed documents stay findable by title.
func matches(doc *domain.Document, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Title), needle) {
		return true
	}
	if doc.Status == domain.StatusIndexed {
		return strings.Contains(strings.ToLower(doc.IndexedText), needle)
	}
	return false
}

func applyFilter(docs []domain.Document, filter domain.ReadFilter) []domain.Document {
	switch filter {
	case domain.FilterReadOnly:
		kept := docs[:0:0]
		for i := range docs {
			if docs[i].Read {
				kept = append(kept, docs[i])
			}
		}
		return kept
	case domain.FilterUnreadOnly:
		kept := docs[:0:0]
		for i := range docs {
			if !docs[i].Read {
				kept = append(kept, docs[i])
			}
		}
		return kept
	default:
		return docs
	}
}

// sortDocuments orders in place by the sort key, breaking ties by
// date added ascending then id, for deterministic output.
func sortDocuments(docs []domain.Document, key domain.SortKey) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := &docs[i], &docs[j]
		switch key {
		case domain.SortByTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				return at < bt
			}
		case domain.SortByPageCount:
			if a.PageCount != b.PageCount {
				return a.PageCount < b.PageCount
			}
		case domain.SortByReadStatus:
			if a.Read != b.Read {
				return !a.Read // unread first
			}
		case domain.SortByDateAdded:
			// Fall through to the shared tie-break.
		}
		if !a.DateAdded.Equal(b.DateAdded) {
			return a.DateAdded.Before(b.DateAdded)
		}
		return a.ID < b.ID
	})
}
