//go:build tui

package main

import (
	"github.com/inktrace/inktrace/pkg/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show terminal UI",
	Long:  `Browse content types, writing items and their tags in an interactive terminal UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, _, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return tui.ShowTUI(dbConn)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
