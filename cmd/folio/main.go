// Command folio is a personal PDF library manager: import documents,
// organise them into groups, and search across extracted text.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/folio-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/folio-labs/folio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/folio-labs/folio-cli/internal/adapters/driving/cli"
	"github.com/folio-labs/folio-cli/internal/core/services"
	"github.com/folio-labs/folio-cli/internal/extractors/pdf"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// shutdownTimeout bounds how long exit waits for in-flight extractions.
const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	settings := config.Settings()

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening library store: %w", err)
	}
	defer store.Close()

	docs := store.DocumentStore()
	groups := store.GroupStore()

	coordinator := services.NewCoordinator(docs, pdf.New(), services.IndexerConfig{
		Workers:        settings.Workers,
		QueueSize:      settings.QueueSize,
		ExtractTimeout: settings.ExtractTimeout(),
	})

	library := services.NewLibraryService(docs, groups, coordinator)
	library.SetDefaultGroupColor(settings.DefaultGroupColor)

	cli.SetServices(library, services.NewQueryService(docs, groups), coordinator)
	cli.Execute()

	// Let in-flight extractions commit before the store closes. Queued
	// documents stay pending and resume next session.
	if err := coordinator.Shutdown(shutdownTimeout); err != nil {
		logger.Warn("Shutdown: %v", err)
	}
	return nil
}
