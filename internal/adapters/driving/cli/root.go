// Package cli provides the cobra command tree for the folio binary.
// Commands talk to the core exclusively through the driving ports;
// wiring happens once in main via SetServices.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

// Services backing the commands. nil until SetServices runs; every
// command handler guards against an unconfigured service.
var (
	libraryService driving.Library
	queryService   driving.Query
	indexerService driving.Indexer
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Personal PDF library manager",
	Long: `Folio tracks a personal collection of PDF files: import documents,
organise them into groups, and search across titles and extracted text.

Text extraction runs in a background pipeline; use 'folio index run'
to process pending documents and 'folio index status' to inspect it.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices wires the driving services into the command tree.
func SetServices(library driving.Library, query driving.Query, indexer driving.Indexer) {
	libraryService = library
	queryService = query
	indexerService = indexer
}

// Execute runs the root command. The command context is cancelled on
// SIGINT/SIGTERM so long-running commands can stop cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
