package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

func TestIndexCmd_HasSubcommands(t *testing.T) {
	commands := indexCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "run")
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "retry")
	assert.Contains(t, names, "cancel")
}

func TestIndexRunCmd_NothingToIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("index", "run")
	assert.NoError(t, err)
	assert.Contains(t, out, "Nothing to index")
}

func TestIndexRunCmd_DrainsPending(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("add", "/library/a.pdf")
	require.NoError(t, err)
	_, err = execute("add", "/library/b.pdf")
	require.NoError(t, err)

	out, err := execute("index", "run")
	assert.NoError(t, err)
	assert.Contains(t, out, "2/2 done, 0 failed")

	out, err = execute("list")
	assert.NoError(t, err)
	assert.Contains(t, out, "indexed")
}

func TestIndexRunCmd_ServiceNotConfigured(t *testing.T) {
	oldService := indexerService
	indexerService = nil
	defer func() {
		indexerService = oldService
	}()

	_, err := execute("index", "run")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "indexer service not configured")
}

func TestIndexStatusCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("add", "/library/a.pdf")
	require.NoError(t, err)

	out, err := execute("index", "status")
	assert.NoError(t, err)
	assert.Contains(t, out, "Pending: 1")
	assert.Contains(t, out, "Indexed: 0")
}

func TestIndexRetryCmd_RequiresFailedDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("add", "/library/a.pdf")
	require.NoError(t, err)

	// Pending documents cannot be retried.
	_, err = execute("index", "retry", domain.DocumentID("/library/a.pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexCancelCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("index", "cancel")
	assert.NoError(t, err)
	assert.Contains(t, out, "Indexing cancelled")
}
