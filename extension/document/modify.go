// modify.go implements the "odin doc modify" command.
//
// Only flags given on the command line are changed, so "--volume 0" clears
// a volume while omitting --volume leaves it alone.

package document

import (
	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/edit"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newModifyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "modify (--id N | --title T) [flags]",
		Short: "Change a document's fields",
		Args:  cobra.NoArgs,
		RunE:  e.runModify,
	}
	addRefFlags(c)
	c.Flags().String(extension.FlagNewTitle, "", "Replacement title")
	c.Flags().String(extension.FlagAuthor, "", "Document author")
	c.Flags().String(extension.FlagPublication, "", "Journal, venue or publisher")
	c.Flags().Int(extension.FlagVolume, 0, "Volume number")
	c.Flags().Int(extension.FlagYear, 0, "Publication year")
	c.Flags().String(extension.FlagTags, "", "Comma-separated tags, replacing the current set")
	c.Flags().String(extension.FlagDOI, "", "Digital object identifier")
	return c
}

// updateFromFlags builds an update from the flags that were set.
func updateFromFlags(c *cobra.Command) service.DocumentUpdate {
	var u service.DocumentUpdate
	str := func(name string) *string {
		if !c.Flags().Changed(name) {
			return nil
		}
		v, _ := c.Flags().GetString(name)
		return &v
	}
	num := func(name string) *int {
		if !c.Flags().Changed(name) {
			return nil
		}
		v, _ := c.Flags().GetInt(name)
		return &v
	}
	u.Title = str(extension.FlagNewTitle)
	u.Author = str(extension.FlagAuthor)
	u.Publication = str(extension.FlagPublication)
	u.Volume = num(extension.FlagVolume)
	u.Year = num(extension.FlagYear)
	u.Tags = str(extension.FlagTags)
	u.DOI = str(extension.FlagDOI)
	return u
}

func (e *Extension) runModify(c *cobra.Command, _ []string) error {
	ref := docRef(c)

	l := log.Event("doc:modify", "update").
		Author(cmd.Author()).
		Target(ref.Title).
		ID(ref.ID)

	res, err := edit.Run(c.Context(), writer(), e.svc, ref, updateFromFlags(c), edit.Options{Colour: cmd.Colour()})
	if err != nil {
		l.Write(err)
		return refError("modify", ref, err)
	}

	l.ResultID(res.After.ID).Write(nil)
	return cmd.PrintJSON(res)
}
