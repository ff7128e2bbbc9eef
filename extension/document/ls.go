// ls.go implements the "odin doc ls" command.

package document

import (
	"fmt"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/ls"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [--tag F] [--exact]",
		Short: "List documents",
		Long: `List every document, or those whose tags contain a fragment.

--tag matches anywhere in the tag string, so "ml" also finds "html".
Add --exact to match whole tags only.`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().String(extension.FlagTag, "", "Filter by tag fragment")
	c.Flags().Bool(extension.FlagExact, false, "Match --tag as a whole tag")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	opts := ls.Options{}
	opts.Tag, _ = c.Flags().GetString(extension.FlagTag)
	opts.Exact, _ = c.Flags().GetBool(extension.FlagExact)

	docs, err := ls.Run(c.Context(), writer(), e.svc, opts)

	log.Event("doc:ls", "list").
		Author(cmd.Author()).
		Target(opts.Tag).
		Detail("exact", opts.Exact).
		Detail("count", len(docs)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("doc ls: %w", err))
	}
	return cmd.PrintJSON(docs)
}
