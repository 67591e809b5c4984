package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage document groups",
	Long:  `Create, rename, recolour, delete, or list document groups.`,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupCreate,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all groups",
	Args:  cobra.NoArgs,
	RunE:  runGroupList,
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename [group-id] [name]",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupRename,
}

var groupRecolorCmd = &cobra.Command{
	Use:   "recolor [group-id] [color]",
	Short: "Change a group's colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupRecolor,
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete [group-id]",
	Short: "Delete a group",
	Long:  `Deletes a group. Member documents are detached, never deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupDelete,
}

// Flags for the group create command.
var (
	groupColor       string
	groupDescription string
)

func init() {
	groupCreateCmd.Flags().StringVarP(&groupColor, "color", "c", "", "Display colour (hex), defaults to the configured colour")
	groupCreateCmd.Flags().StringVarP(&groupDescription, "description", "d", "", "Group description")

	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupRenameCmd)
	groupCmd.AddCommand(groupRecolorCmd)
	groupCmd.AddCommand(groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	group, err := libraryService.CreateGroup(cmd.Context(), args[0], groupColor, groupDescription)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	cmd.Printf("Created group %q\n", group.Name)
	cmd.Printf("  ID:    %s\n", group.ID)
	cmd.Printf("  Color: %s\n", group.Color)
	return nil
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	groups, err := libraryService.GetGroups(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if len(groups) == 0 {
		cmd.Println("No groups defined.")
		return nil
	}

	cmd.Println("Groups:")
	cmd.Println()
	for i := range groups {
		cmd.Printf("  %s  %s (%s)\n", groups[i].ID, groups[i].Name, groups[i].Color)
		if groups[i].Description != "" {
			cmd.Printf("      %s\n", groups[i].Description)
		}
	}
	cmd.Printf("\nTotal: %d groups\n", len(groups))
	return nil
}

func runGroupRename(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RenameGroup(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}

	cmd.Printf("Renamed group %s to %q.\n", args[0], args[1])
	return nil
}

func runGroupRecolor(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RecolorGroup(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to recolour group: %w", err)
	}

	cmd.Printf("Recoloured group %s to %s.\n", args[0], args[1])
	return nil
}

func runGroupDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.DeleteGroup(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	cmd.Printf("Deleted group %s. Member documents were detached.\n", args[0])
	return nil
}
