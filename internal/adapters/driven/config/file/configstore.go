// Package file provides the TOML-backed configuration store.
// Settings live in ~/.folio/config.toml by default.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the user-tunable configuration.
type Settings struct {
	// Workers is the indexing pool size. Zero means one worker per CPU.
	Workers int `toml:"workers"`

	// QueueSize bounds the indexing queue. Zero uses the default.
	QueueSize int `toml:"queue_size"`

	// ExtractTimeoutSecs aborts a single extraction after this many
	// seconds. Zero disables the timeout.
	ExtractTimeoutSecs int `toml:"extract_timeout_secs"`

	// DataDir overrides the library database location.
	DataDir string `toml:"data_dir"`

	// DefaultGroupColor is applied to groups created without a colour.
	DefaultGroupColor string `toml:"default_group_color"`
}

// ExtractTimeout returns the timeout as a duration.
func (s Settings) ExtractTimeout() time.Duration {
	return time.Duration(s.ExtractTimeoutSecs) * time.Second
}

// ConfigStore loads and persists Settings as a TOML file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.folio.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".folio")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *ConfigStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and persists the result.
func (s *ConfigStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.settings)
	return s.save()
}

// Load reads settings from disk, replacing in-memory state.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.settings = settings
	return nil
}

// Save persists the current settings to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes settings to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
