package driving

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// Query is the read side of the library. Every operation is a pure
// function of current store state; results reflect pipeline writes
// immediately, with no refresh step.
type Query interface {
	// Search matches query case-insensitively against titles always,
	// and against extracted text only for indexed documents. An empty
	// query matches everything. Results are ordered by sort after
	// filtering; relevance is not computed.
	Search(ctx context.Context, query string, sort domain.SortKey, filter domain.ReadFilter) ([]domain.Document, error)

	// List returns documents ordered by sort and restricted by
	// filter. Ties break by date added ascending, then id.
	List(ctx context.Context, sort domain.SortKey, filter domain.ReadFilter) ([]domain.Document, error)

	// Statistics returns one consistent snapshot of library counts.
	Statistics(ctx context.Context) (*domain.Statistics, error)
}
