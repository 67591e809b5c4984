package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleGroupsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns group list", func(t *testing.T) {
		library := &mockLibraryService{
			groups: []domain.Group{
				{ID: "g1", Name: "Math", Color: "#112233", Description: "calculus"},
			},
		}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Library: library})
		require.NoError(t, err)

		result, err := server.handleGroupsResource(ctx, readRequest(uriScheme+"groups"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Math")
		assert.Contains(t, result.Contents[0].Text, "calculus")
	})

	t.Run("no library service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		result, err := server.handleGroupsResource(ctx, readRequest(uriScheme+"groups"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentTextResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns extracted text", func(t *testing.T) {
		library := &mockLibraryService{
			document: &domain.Document{
				ID:          "doc-1",
				Title:       "thesis",
				Status:      domain.StatusIndexed,
				IndexedText: "extracted body text",
			},
		}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Library: library})
		require.NoError(t, err)

		result, err := server.handleDocumentTextResource(ctx,
			readRequest(uriScheme+"documents/doc-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "extracted body text", result.Contents[0].Text)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Library: &mockLibraryService{}})
		require.NoError(t, err)

		_, err = server.handleDocumentTextResource(ctx, readRequest(uriScheme+"other/doc-1"))
		assert.Error(t, err)
	})

	t.Run("missing document propagates error", func(t *testing.T) {
		library := &mockLibraryService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Library: library})
		require.NoError(t, err)

		_, err = server.handleDocumentTextResource(ctx,
			readRequest(uriScheme+"documents/doc-1"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestExtractDocumentID(t *testing.T) {
	assert.Equal(t, "abc", extractDocumentID(uriScheme+"documents/abc"))
	assert.Empty(t, extractDocumentID(uriScheme+"groups"))
	assert.Empty(t, extractDocumentID("http://documents/abc"))
}
