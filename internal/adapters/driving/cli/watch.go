package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-cli/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch a folder and import new PDFs",
	Long: `Imports every PDF currently in the folder, then keeps watching it,
adding and indexing new PDFs as they appear. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	ctx := cmd.Context()
	indexerService.Start(ctx)
	if _, err := indexerService.ResumePending(ctx); err != nil {
		return fmt.Errorf("failed to resume pending documents: %w", err)
	}

	w, err := watcher.New(libraryService)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to watch folder: %w", err)
	}

	cmd.Printf("Watching %s for new PDFs. Press Ctrl-C to stop.\n", args[0])
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cmd.Println("Stopped watching.")
	return nil
}
