package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"text to match against titles and extracted content; empty matches everything"`
	Sort   string `json:"sort,omitempty" jsonschema:"sort key: title, pageCount, readStatus, or dateAdded (default title)"`
	Filter string `json:"filter,omitempty" jsonschema:"read filter: all, readOnly, or unreadOnly (default all)"`
}

// SearchOutput is the output schema for the search and list tools.
type SearchOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single library document.
type DocumentOutput struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Path          string `json:"path"`
	Status        string `json:"status"`
	PageCount     int    `json:"page_count,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
	Read          bool   `json:"read"`
	GroupID       string `json:"group_id,omitempty"`
}

// ListInput is the input schema for the list tool.
type ListInput struct {
	Sort   string `json:"sort,omitempty" jsonschema:"sort key: title, pageCount, readStatus, or dateAdded (default title)"`
	Filter string `json:"filter,omitempty" jsonschema:"read filter: all, readOnly, or unreadOnly (default all)"`
}

// StatisticsInput is the (empty) input schema for the statistics tool.
type StatisticsInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the PDF library by title and extracted text",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list",
		Description: "List all documents in the PDF library",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "statistics",
		Description: "Get library counts: total, indexed, pending, failed, read",
	}, s.handleStatistics)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	docs, err := s.ports.Query.Search(ctx, input.Query,
		sortKeyOrDefault(input.Sort), filterOrDefault(input.Filter))
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(docs), nil
}

// handleList handles the list tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	docs, err := s.ports.Query.List(ctx,
		sortKeyOrDefault(input.Sort), filterOrDefault(input.Filter))
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(docs), nil
}

// handleStatistics handles the statistics tool invocation.
func (s *Server) handleStatistics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatisticsInput,
) (*mcp.CallToolResult, domain.Statistics, error) {
	stats, err := s.ports.Query.Statistics(ctx)
	if err != nil {
		return nil, domain.Statistics{}, err
	}
	return nil, *stats, nil
}

func sortKeyOrDefault(sort string) domain.SortKey {
	switch domain.SortKey(sort) {
	case domain.SortByPageCount, domain.SortByReadStatus, domain.SortByDateAdded:
		return domain.SortKey(sort)
	default:
		return domain.SortByTitle
	}
}

func filterOrDefault(filter string) domain.ReadFilter {
	switch domain.ReadFilter(filter) {
	case domain.FilterReadOnly, domain.FilterUnreadOnly:
		return domain.ReadFilter(filter)
	default:
		return domain.FilterAll
	}
}

func toSearchOutput(docs []domain.Document) SearchOutput {
	out := SearchOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		out.Documents[i] = DocumentOutput{
			ID:            docs[i].ID,
			Title:         docs[i].Title,
			Path:          docs[i].Path,
			Status:        string(docs[i].Status),
			PageCount:     docs[i].PageCount,
			FailureReason: docs[i].FailureReason,
			Read:          docs[i].Read,
			GroupID:       docs[i].GroupID,
		}
	}
	return out
}
