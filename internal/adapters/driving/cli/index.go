package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// storageRetryInterval is how often a blocked run re-checks store
// health after a storage failure pauses the pipeline.
const storageRetryInterval = 2 * time.Second

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Control the extraction pipeline",
	Long:  `Run, inspect, retry, or cancel background text extraction.`,
}

var indexRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract text from all pending documents",
	Long: `Starts the extraction pipeline and blocks until every pending
document has been processed. Interrupting reverts queued documents to
pending; the next run picks them up again.`,
	Args: cobra.NoArgs,
	RunE: runIndexRun,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show library indexing status",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

var indexRetryCmd = &cobra.Command{
	Use:   "retry [doc-id]",
	Short: "Retry a failed document",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexRetry,
}

var indexCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel in-progress indexing",
	Long: `Stops the pipeline. Queued documents revert to pending; in-flight
extractions finish and commit their result.`,
	Args: cobra.NoArgs,
	RunE: runIndexCancel,
}

func init() {
	indexCmd.AddCommand(indexRunCmd)
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexRetryCmd)
	indexCmd.AddCommand(indexCancelCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRun(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	ctx := cmd.Context()
	indexerService.Start(ctx)

	if _, err := indexerService.ResumePending(ctx); err != nil {
		return fmt.Errorf("failed to start indexing: %w", err)
	}

	start := indexerService.Progress()
	if start.Total == 0 {
		cmd.Println("Nothing to index.")
		return nil
	}

	cmd.Printf("Indexing %d documents...\n", start.Total)

	sub := indexerService.Subscribe()
	defer indexerService.Unsubscribe(sub)

	// Everything may already have drained before we subscribed.
	if snap := indexerService.Progress(); snap.Done() {
		cmd.Printf("  %d/%d done, %d failed\n", snap.Completed, snap.Total, snap.Errors)
		return nil
	}

	retry := time.NewTicker(storageRetryInterval)
	defer retry.Stop()
	storageDown := false

	for {
		select {
		case snap, ok := <-sub:
			if !ok {
				return nil
			}
			cmd.Printf("\r  %d/%d done, %d failed", snap.Completed, snap.Total, snap.Errors)
			if snap.Done() {
				cmd.Println()
				if snap.Errors > 0 {
					cmd.Printf("%d documents failed; see 'folio list' and 'folio index retry'.\n", snap.Errors)
				}
				return nil
			}
		case <-retry.C:
			// Resume is a no-op unless a storage failure paused the
			// pipeline; it errors while the store stays unreachable.
			if err := indexerService.Resume(ctx); err != nil {
				if !storageDown {
					storageDown = true
					cmd.Println("\nStorage unavailable; waiting for it to recover.")
				}
			} else if storageDown {
				storageDown = false
				cmd.Println("Storage recovered; resuming.")
			}
		case <-ctx.Done():
			cmd.Println("\nInterrupted; reverting queued documents to pending.")
			indexerService.Cancel(context.Background())
			return nil
		}
	}
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	stats, err := queryService.Statistics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	cmd.Println("Indexing status:")
	cmd.Printf("  Indexed: %d\n", stats.Indexed)
	cmd.Printf("  Pending: %d\n", stats.Pending)
	cmd.Printf("  Failed:  %d\n", stats.Failed)

	if indexerService != nil {
		if active := indexerService.Progress().Active; len(active) > 0 {
			cmd.Println("\n  Currently extracting:")
			for _, id := range active {
				cmd.Printf("    %s\n", id)
			}
		}
	}
	return nil
}

func runIndexRetry(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RetryIndexing(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to retry document: %w", err)
	}

	cmd.Printf("Document %s queued for another attempt. Run 'folio index run' to process it.\n", args[0])
	return nil
}

func runIndexCancel(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	indexerService.Cancel(cmd.Context())
	cmd.Println("Indexing cancelled. Queued documents reverted to pending.")
	return nil
}
