package main

import (
	"errors"
	"fmt"

	"github.com/inktrace/inktrace/pkg/writing"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Manage content types",
}

var listTypesCmd = &cobra.Command{
	Use:   "list",
	Short: "List content types",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		types, err := writing.ListContentTypes(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list content types: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ID | Name | Icon | Color | Built-in")
		fmt.Fprintln(out, "------------------------------------------------------------")
		for _, ct := range types {
			fmt.Fprintf(out, "%s | %s | %s | %s | %t\n", ct.ID, ct.Name, deref(ct.Icon), deref(ct.Color), ct.IsBuiltIn)
		}
		return nil
	},
}

var createTypeCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a custom content type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		icon, _ := optionalString(cmd, "icon")
		color, _ := optionalString(cmd, "color")
		order, _ := cmd.Flags().GetInt("order")

		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ct, err := writing.CreateContentType(cmd.Context(), dbConn, writing.NewContentType{
			Name:      args[0],
			Icon:      icon,
			Color:     color,
			SortOrder: order,
		})
		if err != nil {
			return fmt.Errorf("failed to create content type: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Content type %q created with id %s\n", ct.Name, ct.ID)
		return nil
	},
}

var deleteTypeCmd = &cobra.Command{
	Use:   "delete [type-id]",
	Short: "Delete a custom content type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = writing.DeleteContentType(cmd.Context(), dbConn, args[0])
		switch {
		case errors.Is(err, writing.ErrContentTypeNotFound):
			return fmt.Errorf("content type not found: %s", args[0])
		case err != nil:
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Content type %s deleted.\n", args[0])
		return nil
	},
}

func initTypesCmd() {
	createTypeCmd.Flags().String("icon", "", "Icon name")
	createTypeCmd.Flags().String("color", "", "Hex color such as #4CAF50")
	createTypeCmd.Flags().Int("order", 100, "Sort position; built-ins use 0-5")

	typesCmd.AddCommand(listTypesCmd, createTypeCmd, deleteTypeCmd)
}
