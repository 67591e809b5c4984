package mcp

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.Query.
type mockQueryService struct {
	documents []domain.Document
	stats     *domain.Statistics
	err       error

	// Captured arguments from the last call.
	lastQuery  string
	lastSort   domain.SortKey
	lastFilter domain.ReadFilter
}

func (m *mockQueryService) Search(
	_ context.Context,
	query string,
	sort domain.SortKey,
	filter domain.ReadFilter,
) ([]domain.Document, error) {
	m.lastQuery = query
	m.lastSort = sort
	m.lastFilter = filter
	return m.documents, m.err
}

func (m *mockQueryService) List(
	_ context.Context,
	sort domain.SortKey,
	filter domain.ReadFilter,
) ([]domain.Document, error) {
	m.lastSort = sort
	m.lastFilter = filter
	return m.documents, m.err
}

func (m *mockQueryService) Statistics(_ context.Context) (*domain.Statistics, error) {
	return m.stats, m.err
}

// mockLibraryService is a mock implementation of driving.Library.
type mockLibraryService struct {
	document *domain.Document
	groups   []domain.Group
	err      error
}

func (m *mockLibraryService) AddDocument(_ context.Context, _, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockLibraryService) AddFolder(_ context.Context, _ string) (*driving.FolderReport, error) {
	return &driving.FolderReport{}, m.err
}

func (m *mockLibraryService) RemoveDocument(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) RenameDocument(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockLibraryService) SetRead(_ context.Context, _ string, _ bool) error {
	return m.err
}

func (m *mockLibraryService) AssignGroup(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockLibraryService) RetryIndexing(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockLibraryService) CreateGroup(_ context.Context, _, _, _ string) (*domain.Group, error) {
	return nil, m.err
}

func (m *mockLibraryService) RenameGroup(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockLibraryService) RecolorGroup(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockLibraryService) DeleteGroup(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) GetGroups(_ context.Context) ([]domain.Group, error) {
	return m.groups, m.err
}
