package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matching documents", func(t *testing.T) {
		mockQuery := &mockQueryService{
			documents: []domain.Document{
				{
					ID:        "doc-1",
					Title:     "Attention Is All You Need",
					Path:      "/library/1706.03762.pdf",
					Status:    domain.StatusIndexed,
					PageCount: 15,
					Read:      true,
				},
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "attention"}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Documents, 1)
		assert.Equal(t, "doc-1", output.Documents[0].ID)
		assert.Equal(t, "Attention Is All You Need", output.Documents[0].Title)
		assert.Equal(t, "/library/1706.03762.pdf", output.Documents[0].Path)
		assert.Equal(t, "indexed", output.Documents[0].Status)
		assert.Equal(t, 15, output.Documents[0].PageCount)
		assert.True(t, output.Documents[0].Read)
		assert.Equal(t, "attention", mockQuery.lastQuery)
	})

	t.Run("defaults sort and filter", func(t *testing.T) {
		mockQuery := &mockQueryService{}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "x"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, domain.SortByTitle, mockQuery.lastSort)
		assert.Equal(t, domain.FilterAll, mockQuery.lastFilter)
	})

	t.Run("passes valid sort and filter through", func(t *testing.T) {
		mockQuery := &mockQueryService{}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		input := SearchInput{Query: "x", Sort: "pageCount", Filter: "unreadOnly"}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, domain.SortByPageCount, mockQuery.lastSort)
		assert.Equal(t, domain.FilterUnreadOnly, mockQuery.lastFilter)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockQuery := &mockQueryService{
			err: errors.New("search failed"),
		}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all documents", func(t *testing.T) {
		mockQuery := &mockQueryService{
			documents: []domain.Document{
				{ID: "doc-1", Title: "a", Status: domain.StatusPending},
				{ID: "doc-2", Title: "b", Status: domain.StatusFailed, FailureReason: "Timeout"},
			},
		}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "Timeout", output.Documents[1].FailureReason)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("list failed")}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleList(ctx, nil, ListInput{})
		require.Error(t, err)
	})
}

func TestServer_handleStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("returns statistics snapshot", func(t *testing.T) {
		mockQuery := &mockQueryService{
			stats: &domain.Statistics{
				Total:          4,
				Indexed:        2,
				Pending:        1,
				Failed:         1,
				ReadCount:      3,
				PerGroupCounts: map[string]int{"g1": 2},
			},
		}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleStatistics(ctx, nil, StatisticsInput{})

		require.NoError(t, err)
		assert.Equal(t, 4, output.Total)
		assert.Equal(t, 2, output.Indexed)
		assert.Equal(t, map[string]int{"g1": 2}, output.PerGroupCounts)
	})

	t.Run("returns error on statistics failure", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("stats failed")}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleStatistics(ctx, nil, StatisticsInput{})
		require.Error(t, err)
	})
}
