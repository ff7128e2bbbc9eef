// rm.go implements the "odin doc rm" command.
//
// The row is removed even when the stored file cannot be; that case prints
// a warning on stderr and still exits 0.

package document

import (
	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm (--id N | --title T)",
		Short: "Remove a document and its stored file",
		Args:  cobra.NoArgs,
		RunE:  e.runRm,
	}
	addRefFlags(c)
	return c
}

func (e *Extension) runRm(c *cobra.Command, _ []string) error {
	ref := docRef(c)

	l := log.Event("doc:rm", "delete").
		Author(cmd.Author()).
		Target(ref.Title).
		ID(ref.ID)

	res, err := rm.Run(c.Context(), writer(), e.svc, ref)
	if err != nil {
		l.Write(err)
		return refError("rm", ref, err)
	}

	if res.Warning != "" {
		cmd.Warn("%s", res.Warning)
	}
	l.Detail("deleted", res.Deleted).Detail("warning", res.Warning).Write(nil)
	return cmd.PrintJSON(res)
}
