package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentID_Stable(t *testing.T) {
	a := DocumentID("/library/papers/attention.pdf")
	b := DocumentID("/library/papers/attention.pdf")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex sha-256
}

func TestDocumentID_DistinctPaths(t *testing.T) {
	a := DocumentID("/library/a.pdf")
	b := DocumentID("/library/b.pdf")
	assert.NotEqual(t, a, b)
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "strips extension",
			path:     "/library/Linear Algebra.pdf",
			expected: "Linear Algebra",
		},
		{
			name:     "no extension",
			path:     "/library/README",
			expected: "README",
		},
		{
			name:     "dotted name",
			path:     "/library/v1.2-notes.pdf",
			expected: "v1.2-notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleFromPath(tt.path))
		})
	}
}

func TestValidTransition(t *testing.T) {
	allowed := [][2]IndexStatus{
		{StatusPending, StatusIndexing},
		{StatusIndexing, StatusIndexed},
		{StatusIndexing, StatusFailed},
		{StatusFailed, StatusPending},
	}
	for _, tr := range allowed {
		assert.True(t, ValidTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]IndexStatus{
		{StatusPending, StatusIndexed},
		{StatusPending, StatusFailed},
		{StatusIndexed, StatusPending},
		{StatusIndexed, StatusIndexing},
		{StatusFailed, StatusIndexing},
		{StatusIndexing, StatusPending},
	}
	for _, tr := range denied {
		assert.False(t, ValidTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestGroupValidate(t *testing.T) {
	assert.NoError(t, Group{Name: "Math"}.Validate())
	assert.ErrorIs(t, Group{Name: "   "}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Group{}.Validate(), ErrInvalidInput)
}
