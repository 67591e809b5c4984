package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Add a PDF to the library",
	Long: `Registers a PDF file and queues it for text extraction.
The title defaults to the file name without its extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var addFolderCmd = &cobra.Command{
	Use:   "add-folder [path]",
	Short: "Add every PDF in a folder",
	Long: `Imports every PDF that is a direct child of the folder.
Subdirectories are not descended into. Files already in the library
are skipped and counted, not treated as errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddFolder,
}

var rmCmd = &cobra.Command{
	Use:   "rm [doc-id]",
	Short: "Remove a document from the library",
	Long:  `Removes the library entry. The PDF file on disk is untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var renameCmd = &cobra.Command{
	Use:   "rename [doc-id] [title]",
	Short: "Change a document's title",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var readCmd = &cobra.Command{
	Use:   "read [doc-id]",
	Short: "Mark a document as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkRead,
}

var unreadCmd = &cobra.Command{
	Use:   "unread [doc-id]",
	Short: "Mark a document as unread",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkUnread,
}

var assignCmd = &cobra.Command{
	Use:   "assign [doc-id] [group-id]",
	Short: "Assign a document to a group",
	Long: `Puts a document into a group. Pass --none instead of a group id
to detach the document from its group.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAssign,
}

// addTitle is a flag for the add command.
var addTitle string

// assignNone is a flag for the assign command.
var assignNone bool

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Display title for the document")
	assignCmd.Flags().BoolVar(&assignNone, "none", false, "Detach the document from its group")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(addFolderCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(unreadCmd)
	rootCmd.AddCommand(assignCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.AddDocument(cmd.Context(), args[0], addTitle)
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}

	cmd.Printf("Added %s\n", doc.Title)
	cmd.Printf("  ID: %s\n", doc.ID)
	cmd.Println("Run 'folio index run' to extract its text.")
	return nil
}

func runAddFolder(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	report, err := libraryService.AddFolder(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to add folder: %w", err)
	}

	for i := range report.Added {
		cmd.Printf("  + %s\n", report.Added[i].Title)
	}
	cmd.Printf("Added %d documents, skipped %d already present.\n",
		len(report.Added), report.Skipped)
	if len(report.Added) > 0 {
		cmd.Println("Run 'folio index run' to extract their text.")
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RemoveDocument(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed document %s. The file on disk is untouched.\n", args[0])
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RenameDocument(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename document: %w", err)
	}

	cmd.Printf("Renamed document %s to %q.\n", args[0], args[1])
	return nil
}

func runMarkRead(cmd *cobra.Command, args []string) error {
	return setRead(cmd, args[0], true)
}

func runMarkUnread(cmd *cobra.Command, args []string) error {
	return setRead(cmd, args[0], false)
}

func setRead(cmd *cobra.Command, id string, read bool) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.SetRead(cmd.Context(), id, read); err != nil {
		return fmt.Errorf("failed to update read status: %w", err)
	}

	state := "read"
	if !read {
		state = "unread"
	}
	cmd.Printf("Marked document %s as %s.\n", id, state)
	return nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	var groupID string
	switch {
	case assignNone && len(args) == 1:
		// Detach.
	case !assignNone && len(args) == 2:
		groupID = args[1]
	default:
		return errors.New("provide a group id or --none, not both")
	}

	if err := libraryService.AssignGroup(cmd.Context(), args[0], groupID); err != nil {
		return fmt.Errorf("failed to assign group: %w", err)
	}

	if groupID == "" {
		cmd.Printf("Detached document %s from its group.\n", args[0])
	} else {
		cmd.Printf("Assigned document %s to group %s.\n", args[0], groupID)
	}
	return nil
}
