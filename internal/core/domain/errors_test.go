package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"unreadable", ErrFileUnreadable, "FileUnreadable"},
		{"malformed", ErrMalformedDocument, "MalformedDocument"},
		{"encrypted", ErrEncryptedDocument, "EncryptedDocument"},
		{"timeout", ErrExtractionTimeout, "Timeout"},
		{"wrapped", fmt.Errorf("open %s: %w", "/x.pdf", ErrMalformedDocument), "MalformedDocument"},
		{"other", errors.New("disk on fire"), "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FailureReason(tt.err))
		})
	}
}

func TestProgressSnapshotDone(t *testing.T) {
	assert.True(t, ProgressSnapshot{Total: 3, Completed: 3}.Done())
	assert.False(t, ProgressSnapshot{Total: 3, Completed: 2}.Done())
	assert.False(t, ProgressSnapshot{Total: 3, Completed: 3, Active: []string{"a"}}.Done())
	assert.True(t, ProgressSnapshot{}.Done())
}
