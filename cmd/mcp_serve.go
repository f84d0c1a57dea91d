package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shy5ta/studentSuite/internal/mcp"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Start an MCP server exposing the solvers",
	Long: `Start a Model Context Protocol (MCP) server over stdio so agents can
browse the catalog and request worked solutions.

The server provides tools for:
  - Listing courses and topics
  - Describing a problem's input fields
  - Solving a problem

To use it from an MCP client, register a local server such as:
  {
    "mcp": {
      "studentsuite": {
        "type": "local",
        "command": ["studentsuite", "mcp-serve"],
        "enabled": true
      }
    }
  }`,
	Example: `  # Start the MCP server
  studentsuite mcp-serve

  # Test it manually (sends JSON-RPC via stdin)
  echo '{"jsonrpc":"2.0","method":"tools/list","id":1}' | studentsuite mcp-serve`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cat, err := setup()
		if err != nil {
			return err
		}
		if err := mcp.Serve(sess, cat); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}
