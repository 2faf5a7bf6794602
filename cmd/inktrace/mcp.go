package main

import (
	"github.com/inktrace/inktrace/pkg/mcp"
	"github.com/inktrace/inktrace/pkg/utils"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the inktrace MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes writing items,
content types, tags and folders as MCP tools via STDIO.

Logs go to stderr (or --log-file) so they never mix with the JSON-RPC stream
on stdout.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\inktrace\inktrace.db
- macOS: ~/Library/Application Support/inktrace/inktrace.db
- Linux: ~/.local/share/inktrace/inktrace.db

Example:
  inktrace mcp
  inktrace mcp --db writing.db --log-file /tmp/inktrace.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.ResolveAndEnsureDBPath(settings.DBPath)
		if err != nil {
			return err
		}

		srv, err := mcp.NewInktraceMCPServer(cmd.Context(), settings.DBOptions(path), logger)
		if err != nil {
			return err
		}
		defer srv.Close()

		return srv.Start()
	},
}
