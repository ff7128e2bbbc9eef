// Package core provides the core extension for odin.
// It registers commands: init, config, serve, guide, db, vacuum, version.
package core

import (
	"github.com/jpl-au/odin/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core" - this extension provides catalog management commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands for repository management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newDBCmd(),
		newVacuumCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - core tools are registered by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own lifecycle.
// serve: the MCP server opens the catalog itself and may start without one.
// db: --local/--share only touch .gitignore; status opens the catalog itself.
// version: displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "version"}
}
