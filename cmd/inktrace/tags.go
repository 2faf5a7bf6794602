package main

import (
	"errors"
	"fmt"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage the tag vocabulary",
}

var listTagsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		tags, err := writing.ListTags(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(tags) == 0 {
			fmt.Fprintln(out, "No tags found.")
			return nil
		}
		fmt.Fprintln(out, "ID | Name | Color | Usage")
		fmt.Fprintln(out, "------------------------------------------------------------")
		for _, tag := range tags {
			fmt.Fprintf(out, "%s | %s | %s | %d\n", tag.ID, tag.Name, deref(tag.Color), tag.UsageCount)
		}
		return nil
	},
}

var createTagCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := optionalString(cmd, "color")

		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		tag, err := writing.CreateTag(cmd.Context(), dbConn, writing.NewTag{Name: args[0], Color: color})
		if errors.Is(err, writing.ErrTagExists) {
			return fmt.Errorf("a tag named %q already exists", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tag %q created with id %s\n", tag.Name, tag.ID)
		return nil
	},
}

var deleteTagCmd = &cobra.Command{
	Use:   "delete [tag-id]",
	Short: "Delete a tag and remove it from every item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = writing.DeleteTag(cmd.Context(), dbConn, args[0])
		if errors.Is(err, writing.ErrTagNotFound) {
			return fmt.Errorf("tag not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tag %s deleted.\n", args[0])
		return nil
	},
}

var recountTagsCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute tag usage counts from item links",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := writing.RecountTagUsage(cmd.Context(), dbConn); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Tag usage counts refreshed.")
		return nil
	},
}

func initTagsCmd() {
	createTagCmd.Flags().String("color", "", "Hex color such as #FF9800")

	tagsCmd.AddCommand(listTagsCmd, createTagCmd, deleteTagCmd, recountTagsCmd)
}
