// Package watcher auto-imports PDFs that appear in watched library
// folders. Watches are non-recursive, matching the AddFolder import
// policy: only direct children of a watched folder are considered.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Watcher imports newly created PDFs into the library.
type Watcher struct {
	library driving.Library
	fw      *fsnotify.Watcher
}

// New creates a watcher that feeds discovered PDFs into library.
func New(library driving.Library) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{library: library, fw: fw}, nil
}

// Watch registers a folder. Existing PDFs in it are imported
// immediately so a freshly watched folder and a watched-then-filled
// folder end up in the same state.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	report, err := w.library.AddFolder(ctx, dir)
	if err != nil {
		return fmt.Errorf("importing existing files: %w", err)
	}
	logger.Info("Watching %s (%d imported, %d already tracked)",
		dir, len(report.Added), report.Skipped)

	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	return nil
}

// Run processes filesystem events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// handle imports a newly appeared PDF. Both Create and Rename-in
// produce Create events; writes to a file already imported are
// ignored, as is anything that does not look like a PDF.
func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		// Gone already, or a directory that happens to end in .pdf.
		return
	}

	if _, err := w.library.AddDocument(ctx, event.Name, ""); err != nil {
		if errors.Is(err, domain.ErrDuplicatePath) {
			return
		}
		logger.Warn("Could not import %s: %v", event.Name, err)
		return
	}
	logger.Info("Imported %s", event.Name)
}
