// serve.go implements the "odin serve" command for MCP server operation.
//
// Serve is a NoStoreCommand: the server opens the catalog itself and can
// start before one exists, so a client can call odin_init.

package core

import (
	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --dir to serve a catalog elsewhere:
  odin serve --dir /path/to/library`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.Dir())
}
