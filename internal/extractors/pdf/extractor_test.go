package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), "/nonexistent/file.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileUnreadable)
}

func TestExtract_NotAPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0600))

	extractor := New()
	_, err := extractor.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestExtract_TruncatedPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.pdf")
	// A valid header with no body exercises the parser's failure path.
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0600))

	extractor := New()
	_, err := extractor.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestClassifyOpenError(t *testing.T) {
	assert.ErrorIs(t, classifyOpenError(errors.New("encrypted PDF")), domain.ErrEncryptedDocument)
	assert.ErrorIs(t, classifyOpenError(errors.New("invalid password")), domain.ErrEncryptedDocument)
	assert.ErrorIs(t, classifyOpenError(errors.New("malformed PDF: bad xref")), domain.ErrMalformedDocument)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"collapses whitespace", "a  b\n\nc\t d", "a b c d"},
		{"trims edges", "  hello  ", "hello"},
		{"drops control runes", "a\x00b\x1fc", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitize(tt.in))
		})
	}
}
