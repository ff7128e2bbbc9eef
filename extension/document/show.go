// show.go implements the "odin doc show" command.
//
// A terminal gets a rendered Markdown summary; pipes get the framed record.

package document

import (
	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/internal/cat"
	"github.com/jpl-au/odin/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show (--id N | --title T)",
		Short: "Show a document and its stored file",
		Args:  cobra.NoArgs,
		RunE:  e.runShow,
	}
	addRefFlags(c)
	return c
}

func (e *Extension) runShow(c *cobra.Command, _ []string) error {
	ref := docRef(c)

	res, err := cat.Lookup(c.Context(), e.svc, ref)

	log.Event("doc:show", "read").
		Author(cmd.Author()).
		Target(ref.Title).
		ID(ref.ID).
		Write(err)

	if err != nil {
		return refError("show", ref, err)
	}

	switch {
	case cmd.JSON():
		return cmd.PrintJSON(res)
	case cmd.Terminal():
		cmd.Render(cat.Markdown(res))
	default:
		_, err = cat.Run(c.Context(), cmd.Out(), e.svc, ref)
	}
	return err
}
