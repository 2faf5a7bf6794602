package main

import (
	"errors"
	"fmt"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Manage folders",
}

var listFoldersCmd = &cobra.Command{
	Use:   "list",
	Short: "List all folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		folders, err := writing.ListFolders(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(folders) == 0 {
			fmt.Fprintln(out, "No folders found.")
			return nil
		}
		fmt.Fprintln(out, "ID | Name | Parent | Order")
		fmt.Fprintln(out, "------------------------------------------------------------")
		for _, f := range folders {
			fmt.Fprintf(out, "%s | %s | %s | %d\n", f.ID, f.Name, deref(f.ParentID), f.SortOrder)
		}
		return nil
	},
}

var createFolderCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := optionalString(cmd, "parent")
		order, _ := cmd.Flags().GetInt("order")

		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		folder, err := writing.CreateFolder(cmd.Context(), dbConn, writing.NewFolder{
			Name:      args[0],
			ParentID:  parent,
			SortOrder: order,
		})
		if err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Folder %q created with id %s\n", folder.Name, folder.ID)
		return nil
	},
}

var deleteFolderCmd = &cobra.Command{
	Use:   "delete [folder-id]",
	Short: "Delete an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = writing.DeleteFolder(cmd.Context(), dbConn, args[0])
		switch {
		case errors.Is(err, writing.ErrFolderNotFound):
			return fmt.Errorf("folder not found: %s", args[0])
		case errors.Is(err, writing.ErrFolderInUse):
			return fmt.Errorf("folder %s is not empty; move or delete its items and subfolders first", args[0])
		case err != nil:
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Folder %s deleted.\n", args[0])
		return nil
	},
}

func initFoldersCmd() {
	createFolderCmd.Flags().String("parent", "", "Parent folder id")
	createFolderCmd.Flags().Int("order", 0, "Position among siblings")

	foldersCmd.AddCommand(listFoldersCmd, createFolderCmd, deleteFolderCmd)
}
