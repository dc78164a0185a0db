package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
plan_rename, rename_dataset, verify_dataset and list_classes tools.
Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		server := mcp.NewServer(mcp.Options{
			Version: Version,
			Order:   sortOrder(),
			Locker:  newLocker(false),
			Logger:  appLogger,
		})
		return server.Start(ctx)
	},
}
