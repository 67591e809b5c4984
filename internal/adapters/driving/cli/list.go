package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List library documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// Flags shared by the list and search commands.
var (
	listSort   string
	listFilter string
	listJSON   bool
)

func init() {
	for _, cmd := range []*cobra.Command{listCmd, searchCmd} {
		cmd.Flags().StringVarP(&listSort, "sort", "s", "title", "sort key: title, pages, read, added")
		cmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "read filter: all, read, unread")
		cmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	}
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	sortKey, filter, err := parseListFlags()
	if err != nil {
		return err
	}

	docs, err := queryService.List(cmd.Context(), sortKey, filter)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listJSON {
		return outputDocumentsJSON(cmd, docs)
	}
	return outputDocumentsTable(cmd, docs)
}

func parseListFlags() (domain.SortKey, domain.ReadFilter, error) {
	var sortKey domain.SortKey
	switch listSort {
	case "title":
		sortKey = domain.SortByTitle
	case "pages":
		sortKey = domain.SortByPageCount
	case "read":
		sortKey = domain.SortByReadStatus
	case "added":
		sortKey = domain.SortByDateAdded
	default:
		return "", "", fmt.Errorf("unknown sort key %q (title, pages, read, added)", listSort)
	}

	var filter domain.ReadFilter
	switch listFilter {
	case "all":
		filter = domain.FilterAll
	case "read":
		filter = domain.FilterReadOnly
	case "unread":
		filter = domain.FilterUnreadOnly
	default:
		return "", "", fmt.Errorf("unknown filter %q (all, read, unread)", listFilter)
	}

	return sortKey, filter, nil
}

func outputDocumentsJSON(cmd *cobra.Command, docs []domain.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDocumentsTable(cmd *cobra.Command, docs []domain.Document) error {
	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		read := " "
		if docs[i].Read {
			read = "r"
		}
		cmd.Printf("  [%s] %s  %s\n", read, shortID(docs[i].ID), docs[i].Title)
		cmd.Printf("      Status: %s", docs[i].Status)
		if docs[i].Status == domain.StatusIndexed {
			cmd.Printf(", %d pages", docs[i].PageCount)
		}
		if docs[i].FailureReason != "" {
			cmd.Printf(" (%s)", docs[i].FailureReason)
		}
		cmd.Println()
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

// shortID abbreviates a document id for table output.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
