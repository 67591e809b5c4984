package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_NoFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Defaults: everything zero until configured.
	assert.Equal(t, Settings{}, store.Settings())
}

func TestConfigStore_UpdateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	err = store.Update(func(s *Settings) {
		s.Workers = 4
		s.ExtractTimeoutSecs = 30
		s.DefaultGroupColor = "#aabbcc"
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "config.toml"))

	// A fresh store sees the persisted values.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	settings := reloaded.Settings()
	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, 30*time.Second, settings.ExtractTimeout())
	assert.Equal(t, "#aabbcc", settings.DefaultGroupColor)
}

func TestConfigStore_ParsesExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "workers = 2\nqueue_size = 64\ndata_dir = \"/tmp/lib\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, 2, settings.Workers)
	assert.Equal(t, 64, settings.QueueSize)
	assert.Equal(t, "/tmp/lib", settings.DataDir)
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("workers = ["), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}
