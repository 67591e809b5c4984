package driven

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// Extractor produces plain text and a page count from one PDF file.
//
// Extraction is a pure function of the file bytes: no side effects
// beyond reading the file, and each call opens and releases its own
// file handle. Failures are reported as domain extraction errors
// (ErrFileUnreadable, ErrMalformedDocument, ErrEncryptedDocument);
// the pipeline converts them into a failed document state.
type Extractor interface {
	Extract(ctx context.Context, path string) (*domain.Extraction, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) (*domain.Extraction, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, path string) (*domain.Extraction, error) {
	return f(ctx, path)
}
