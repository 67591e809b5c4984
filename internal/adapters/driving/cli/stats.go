package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	stats, err := queryService.Statistics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statistics: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("Library statistics:")
	cmd.Printf("  Documents: %d\n", stats.Total)
	cmd.Printf("  Indexed:   %d\n", stats.Indexed)
	cmd.Printf("  Pending:   %d\n", stats.Pending)
	cmd.Printf("  Failed:    %d\n", stats.Failed)
	cmd.Printf("  Read:      %d\n", stats.ReadCount)

	if len(stats.PerGroupCounts) > 0 && libraryService != nil {
		groups, err := libraryService.GetGroups(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		cmd.Println("\n  Per group:")
		for i := range groups {
			if n := stats.PerGroupCounts[groups[i].ID]; n > 0 {
				cmd.Printf("    %s: %d\n", groups[i].Name, n)
			}
		}
	}
	return nil
}
