package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search library documents",
	Long: `Searches case-insensitively across document titles and, for indexed
documents, their extracted text. An empty query matches everything.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	sortKey, filter, err := parseListFlags()
	if err != nil {
		return err
	}

	docs, err := queryService.Search(cmd.Context(), args[0], sortKey, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if listJSON {
		return outputDocumentsJSON(cmd, docs)
	}
	return outputDocumentsTable(cmd, docs)
}
