package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
)

// IndexStatus is the lifecycle state of a document's text extraction.
// Transitions only move forward: pending -> indexing -> {indexed, failed}.
// A failed document may be returned to pending by an explicit retry.
type IndexStatus string

const (
	// StatusPending indicates the document is awaiting extraction.
	StatusPending IndexStatus = "pending"
	// StatusIndexing indicates a pipeline worker is extracting the document.
	StatusIndexing IndexStatus = "indexing"
	// StatusIndexed indicates extraction completed and text is available.
	StatusIndexed IndexStatus = "indexed"
	// StatusFailed indicates extraction failed; FailureReason says why.
	StatusFailed IndexStatus = "failed"
)

// ValidTransition reports whether a status change is permitted.
// The only backward edge is failed -> pending (explicit retry).
func ValidTransition(from, to IndexStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusIndexing
	case StatusIndexing:
		return to == StatusIndexed || to == StatusFailed
	case StatusFailed:
		return to == StatusPending
	default:
		return false
	}
}

// Document represents one tracked PDF file in the library.
// Documents are owned by the store and mutated only through store
// operations, never directly by pipeline workers.
type Document struct {
	// ID is the hex SHA-256 of the absolute file path.
	ID string

	// Path is the absolute location of the PDF file. Unique per library.
	Path string

	// Title is the editable display name. Defaults to the file name
	// without its extension.
	Title string

	// PageCount is the number of pages, known once indexed.
	PageCount int

	// IndexedText is the extracted plain text. Empty until indexed.
	IndexedText string

	// Status is the extraction lifecycle state.
	Status IndexStatus

	// FailureReason is a human-readable reason when Status is failed.
	FailureReason string

	// Read marks whether the user has read the document.
	Read bool

	// DateAdded is when the document entered the library.
	DateAdded time.Time

	// GroupID is the owning group, or empty for ungrouped documents.
	GroupID string
}

// DocumentID derives the stable document id from an absolute path.
func DocumentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

// TitleFromPath returns the default title for a path: the base file
// name with its extension stripped.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extraction is the result of extracting one PDF: its plain text and
// page count. Produced by the Extractor, persisted by the pipeline.
type Extraction struct {
	Text      string
	PageCount int
}
