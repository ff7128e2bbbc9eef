// db.go implements the "odin db" command for database status.
//
// DB is a NoStoreCommand because toggling local/shared status only edits
// .odin/.gitignore. Opening the catalog is only needed for row counts.

package core

import (
	"context"
	"fmt"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/repo"
	"github.com/jpl-au/odin/internal/store"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db",
		Short: "Show or change catalog database status",
		Long: `Show where the catalog lives and whether its database is committed.

  odin db            # paths, row counts, local/shared
  odin db --local    # gitignore the database
  odin db --share    # commit the database

Stored documents and local config are always gitignored.`,
		Args: cobra.NoArgs,
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

type dbStatus struct {
	Root    string       `json:"root"`
	DB      string       `json:"db"`
	Content string       `json:"content"`
	Local   bool         `json:"local"`
	Stats   *store.Stats `json:"stats"`
}

func runDB(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	paths, err := repo.Discover(cmd.Dir())
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if local || share {
		action := "share"
		change := repo.ShareDB
		if local {
			action, change = "ignore", repo.IgnoreDB
		}
		err := change(paths.Dir)

		log.Event("core:db", action).Author(cmd.Author()).Target(paths.DB).Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db %s: %w", action, err))
		}
		status := "shared"
		if local {
			status = "local"
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"db": paths.DB, "local": local})
		}
		fmt.Fprintf(cmd.Out(), "%s marked as %s\n", repo.DBFile, status)
		return nil
	}

	ignored, err := repo.IsIgnored(paths.Dir)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status: %w", err))
	}
	svc, err := cmd.Service()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	stats, err := svc.Stats(context.Background())

	log.Event("core:db", "status").Author(cmd.Author()).Target(paths.DB).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status: %w", err))
	}

	st := dbStatus{Root: paths.Root, DB: paths.DB, Content: svc.ContentDir(), Local: ignored, Stats: stats}
	if cmd.JSON() {
		return cmd.PrintJSON(st)
	}
	status := "shared"
	if st.Local {
		status = "local"
	}
	w := cmd.Out()
	fmt.Fprintf(w, "%-10s %s\n", "root:", st.Root)
	fmt.Fprintf(w, "%-10s %s (%s)\n", "database:", st.DB, status)
	fmt.Fprintf(w, "%-10s %s\n", "content:", st.Content)
	fmt.Fprintf(w, "%-10s %d documents, %d tags\n", "rows:", stats.Documents, stats.Tags)
	return nil
}
