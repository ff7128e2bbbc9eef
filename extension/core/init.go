// init.go implements the "odin init" command for repository initialisation.
//
// Init does NOT create config; that is managed separately via "odin config",
// following git's model where init creates repository structure only. The
// --local flag controls whether the database is committed or gitignored.

package core

import (
	"fmt"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/catalog"
	"github.com/jpl-au/odin/internal/log"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new odin catalog",
		Long: `Creates .odin/odin.db in the current directory.

Use --dir to create in a different directory:
  odin init --dir /path/to/library

Use --local to exclude the database from git:
  odin init --local

Use --force to replace an existing database. Stored files are kept.

Note: init does not create config. Use "odin config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	dir := cmd.Dir()

	paths, err := catalog.Init(cmd.Force(), local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Target(paths.Dir).
		Detail("force", cmd.Force()).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"dir": paths.Dir, "db": paths.DB, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised odin catalog in %s\n", paths.Dir)
	return nil
}
