package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute("search")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_MatchesTitles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("add", "/library/attention.pdf")
	require.NoError(t, err)
	_, err = execute("add", "/library/unrelated.pdf")
	require.NoError(t, err)

	out, err := execute("search", "attention")
	assert.NoError(t, err)
	assert.Contains(t, out, "attention")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestSearchCmd_MatchesIndexedContent(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("add", "/library/a.pdf")
	require.NoError(t, err)
	_, err = execute("index", "run")
	require.NoError(t, err)

	// The stub extractor indexes "text of <path>".
	out, err := execute("search", "text of")
	assert.NoError(t, err)
	assert.Contains(t, out, "Total: 1 documents")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "nothing matches this")
	assert.NoError(t, err)
	assert.Contains(t, out, "No documents found")
}

func TestSearchCmd_RejectsUnknownSort(t *testing.T) {
	cleanup := setupTestServices()
	defer func() {
		listSort = "title"
		cleanup()
	}()

	_, err := execute("search", "x", "--sort", "bogus")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort key")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := queryService
	queryService = nil
	defer func() {
		queryService = oldService
	}()

	_, err := execute("search", "x")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query service not configured")
}
