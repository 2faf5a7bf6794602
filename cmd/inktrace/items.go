package main

import (
	"fmt"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/spf13/cobra"
)

var (
	jsonOutputFlag bool
	typeFilterFlag string
	folderFlag     string
	unfiledFlag    bool
)

var itemsCmd = &cobra.Command{
	Use:     "items",
	Aliases: []string{"item"},
	Short:   "Manage writing items",
	Long:    `Create, list, show, update and delete writing items (poems, articles, notes...).`,
}

var listItemsCmd = &cobra.Command{
	Use:   "list",
	Short: "List writing items, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		items, err := writing.ListWritingItems(cmd.Context(), dbConn, writing.ListFilter{
			TypeID:   typeFilterFlag,
			FolderID: folderFlag,
			Unfiled:  unfiledFlag,
		})
		if err != nil {
			return fmt.Errorf("failed to list writing items: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutputFlag {
			return printJSON(out, items)
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "No writing items found.")
			return nil
		}

		fmt.Fprintln(out, "ID | Title | Type | Tags | Created At")
		fmt.Fprintln(out, "------------------------------------------------------------")
		for _, item := range items {
			fmt.Fprintf(out, "%s | %s | %s | %s | %s\n",
				item.ID, item.Title, item.TypeID, formatTagsList(item.Tags), item.CreatedAt)
		}
		return nil
	},
}

var getItemCmd = &cobra.Command{
	Use:   "get [item-id]",
	Short: "Show a writing item with its tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		item, err := writing.GetWritingItem(cmd.Context(), dbConn, args[0])
		if err != nil {
			return fmt.Errorf("failed to get writing item: %w", err)
		}
		if item == nil {
			return fmt.Errorf("writing item not found: %s", args[0])
		}

		if jsonOutputFlag {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var createItemCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a writing item",
	Long: `Create a writing item. Tags are given as comma-separated tag ids; an
unknown tag, type or folder id aborts the whole create.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := writing.NewWritingItem{}
		applyItemFlags(cmd, &input)

		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		id, err := writing.CreateWritingItem(cmd.Context(), dbConn, input)
		if err != nil {
			return fmt.Errorf("failed to create writing item: %w", err)
		}
		logger.Debug().Str("id", id).Int("tags", len(input.TagIDs)).Msg("writing item created")

		item, err := writing.GetWritingItem(cmd.Context(), dbConn, id)
		if err != nil {
			return err
		}
		if jsonOutputFlag {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var updateItemCmd = &cobra.Command{
	Use:   "update [item-id]",
	Short: "Update a writing item",
	Long: `Update a writing item. Only the flags you pass change; pass an empty value
(e.g. --notes "") to clear a field. --tags replaces the whole tag set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		existing, err := writing.GetWritingItem(cmd.Context(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to get writing item: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("writing item not found: %s", id)
		}

		input := itemInputFrom(existing)
		applyItemFlags(cmd, &input)

		matched, err := writing.UpdateWritingItem(cmd.Context(), dbConn, id, input)
		if err != nil {
			return fmt.Errorf("failed to update writing item: %w", err)
		}
		if !matched {
			return fmt.Errorf("writing item not found: %s", id)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Writing item updated successfully!")
		item, err := writing.GetWritingItem(cmd.Context(), dbConn, id)
		if err != nil {
			return err
		}
		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var deleteItemCmd = &cobra.Command{
	Use:   "delete [item-id]",
	Short: "Delete a writing item",
	Long:  `Permanently delete a writing item. Its tag links are removed with it; the tags stay.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		matched, err := writing.DeleteWritingItem(cmd.Context(), dbConn, args[0])
		if err != nil {
			return fmt.Errorf("failed to delete writing item: %w", err)
		}
		if !matched {
			fmt.Fprintf(cmd.OutOrStdout(), "No writing item with id %s; nothing deleted.\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Writing item %s deleted.\n", args[0])
		return nil
	},
}

// itemInputFrom turns a stored item back into a full update input.
func itemInputFrom(item *writing.WritingItemWithTags) writing.NewWritingItem {
	tagIDs := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	return writing.NewWritingItem{
		Title:         item.Title,
		TypeID:        item.TypeID,
		Content:       item.Content,
		CreatedTime:   item.CreatedTime,
		IsPreciseTime: item.IsPreciseTime,
		Background:    item.Background,
		Notes:         item.Notes,
		FolderID:      item.FolderID,
		TagIDs:        tagIDs,
	}
}

// applyItemFlags overwrites the fields of input whose flags were given.
func applyItemFlags(cmd *cobra.Command, input *writing.NewWritingItem) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		input.Title, _ = flags.GetString("title")
	}
	if flags.Changed("type") {
		input.TypeID, _ = flags.GetString("type")
	} else if input.TypeID == "" {
		input.TypeID, _ = flags.GetString("type")
	}
	if v, ok := optionalString(cmd, "content"); ok {
		input.Content = v
	}
	if v, ok := optionalString(cmd, "written"); ok {
		input.CreatedTime = v
	}
	if flags.Changed("precise") {
		input.IsPreciseTime, _ = flags.GetBool("precise")
	}
	if v, ok := optionalString(cmd, "background"); ok {
		input.Background = v
	}
	if v, ok := optionalString(cmd, "notes"); ok {
		input.Notes = v
	}
	if v, ok := optionalString(cmd, "folder"); ok {
		input.FolderID = v
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetString("tags")
		input.TagIDs = splitList(tags)
	}
}

func addItemFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Title of the item")
	cmd.Flags().String("type", "note-type", "Content type id (e.g. poem-type, article-type)")
	cmd.Flags().String("content", "", "Body text")
	cmd.Flags().String("written", "", "When the piece was written (free text, e.g. 2024-03-01)")
	cmd.Flags().Bool("precise", false, "The written date includes a time of day")
	cmd.Flags().String("background", "", "Circumstances the piece was written in")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().String("folder", "", "Folder id")
	cmd.Flags().String("tags", "", "Comma-separated list of tag ids")
}

func initItemsCmd() {
	itemsCmd.PersistentFlags().BoolVar(&jsonOutputFlag, "json", false, "Print JSON instead of text")

	listItemsCmd.Flags().StringVar(&typeFilterFlag, "type", "", "Only items of this content type id")
	listItemsCmd.Flags().StringVar(&folderFlag, "folder", "", "Only items in this folder id")
	listItemsCmd.Flags().BoolVar(&unfiledFlag, "unfiled", false, "Only items without a folder")

	addItemFlags(createItemCmd)
	createItemCmd.MarkFlagRequired("title")

	addItemFlags(updateItemCmd)

	itemsCmd.AddCommand(
		listItemsCmd,
		getItemCmd,
		createItemCmd,
		updateItemCmd,
		deleteItemCmd,
	)
}
