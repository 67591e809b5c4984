package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePath indicates a document with the same path is
	// already in the library.
	ErrDuplicatePath = errors.New("duplicate path")

	// ErrDuplicateName indicates a group with the same name already exists.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction errors. The pipeline converts these into a failed
	// document state; they never propagate to pipeline callers.

	// ErrFileUnreadable indicates the file is missing or unreadable.
	ErrFileUnreadable = errors.New("file unreadable")

	// ErrMalformedDocument indicates the PDF parser could not open the file.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrEncryptedDocument indicates a password-protected PDF.
	// Encrypted documents are unsupported.
	ErrEncryptedDocument = errors.New("encrypted document")

	// ErrExtractionTimeout indicates the per-document extraction
	// timeout elapsed.
	ErrExtractionTimeout = errors.New("extraction timeout")

	// Pipeline errors.

	// ErrQueueFull indicates the indexing queue is at capacity.
	ErrQueueFull = errors.New("indexing queue full")

	// ErrStorageUnavailable indicates the underlying store failed.
	// The pipeline pauses until the store is confirmed healthy.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FailureReason maps an extraction error to the reason string
// persisted on a failed document.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrFileUnreadable):
		return "FileUnreadable"
	case errors.Is(err, ErrMalformedDocument):
		return "MalformedDocument"
	case errors.Is(err, ErrEncryptedDocument):
		return "EncryptedDocument"
	case errors.Is(err, ErrExtractionTimeout):
		return "Timeout"
	default:
		return err.Error()
	}
}
