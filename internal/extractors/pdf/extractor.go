// Package pdf implements the driven Extractor port using the
// ledongthuc/pdf parser.
//
// Extraction walks the document page by page so memory stays bounded
// by the largest page, not the whole file, and checks the context
// between pages so timeouts and cancellation take effect promptly.
package pdf

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor extracts plain text and page counts from PDF files.
// It is stateless; each call opens and releases its own file handle.
type Extractor struct{}

// New creates a PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the PDF at path. Failures map onto the domain
// taxonomy: ErrFileUnreadable, ErrEncryptedDocument,
// ErrMalformedDocument. The parser is known to panic on some corrupt
// files, so panics are recovered and reported as malformed.
func (e *Extractor) Extract(ctx context.Context, path string) (res *domain.Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("parsing %s: %v: %w", path, r, domain.ErrMalformedDocument)
		}
	}()

	if _, statErr := os.Stat(path); statErr != nil {
		return nil, fmt.Errorf("opening %s: %v: %w", path, statErr, domain.ErrFileUnreadable)
	}

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", path, openErr, classifyOpenError(openErr))
	}
	defer f.Close()

	pages := r.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			// A single unparseable page does not fail the
			// document; its text is simply absent.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return &domain.Extraction{
		Text:      sanitize(sb.String()),
		PageCount: pages,
	}, nil
}

// classifyOpenError distinguishes encrypted documents from generally
// malformed ones based on the parser's error text.
func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return domain.ErrEncryptedDocument
	}
	return domain.ErrMalformedDocument
}

// sanitize collapses runs of whitespace and strips non-printable
// runes, which PDF text streams produce in abundance.
func sanitize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	space := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPrint(r):
			if space && sb.Len() > 0 {
				sb.WriteRune(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
