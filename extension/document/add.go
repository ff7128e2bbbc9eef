// add.go implements the "odin doc add" command.
//
// A single document comes from flags; a batch comes from a TOML manifest
// via --toml. The two forms are exclusive. A manifest is validated in full
// before anything is written.

package document

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/bulk"
	"github.com/jpl-au/odin/internal/format"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add (--path P --title T | --toml FILE)",
		Short: "Catalogue a document",
		Long: `Copy a PDF into the content store and catalogue it.

A title already in the catalog is reported and left unchanged. Tags that
do not exist yet are created.

With --toml, every [[documents]] entry of the file is added. Relative
paths are resolved against the file's directory.`,
		Args: cobra.NoArgs,
		RunE: e.runAdd,
	}
	c.Flags().String(extension.FlagPath, "", "Source PDF")
	c.Flags().String(extension.FlagTitle, "", "Document title")
	c.Flags().String(extension.FlagAuthor, "", "Document author")
	c.Flags().String(extension.FlagPublication, "", "Journal, venue or publisher")
	c.Flags().Int(extension.FlagVolume, 0, "Volume number")
	c.Flags().Int(extension.FlagYear, 0, "Publication year")
	c.Flags().String(extension.FlagTags, "", "Comma-separated tags")
	c.Flags().String(extension.FlagDOI, "", "Digital object identifier")
	c.Flags().String(extension.FlagTOML, "", "Add every document listed in a TOML file")
	c.Flags().Bool(extension.FlagDryRun, false, "Validate the TOML file without adding anything")
	c.MarkFlagsOneRequired(extension.FlagTOML, extension.FlagPath)
	c.MarkFlagsMutuallyExclusive(extension.FlagTOML, extension.FlagPath)
	c.MarkFlagsMutuallyExclusive(extension.FlagTOML, extension.FlagTitle)
	c.MarkFlagsRequiredTogether(extension.FlagPath, extension.FlagTitle)
	return c
}

func (e *Extension) runAdd(c *cobra.Command, _ []string) error {
	if file, _ := c.Flags().GetString(extension.FlagTOML); file != "" {
		return e.runAddTOML(c, file)
	}

	nd := service.NewDocument{}
	nd.Source, _ = c.Flags().GetString(extension.FlagPath)
	nd.Title, _ = c.Flags().GetString(extension.FlagTitle)
	nd.Author, _ = c.Flags().GetString(extension.FlagAuthor)
	nd.Publication, _ = c.Flags().GetString(extension.FlagPublication)
	nd.Volume, _ = c.Flags().GetInt(extension.FlagVolume)
	nd.Year, _ = c.Flags().GetInt(extension.FlagYear)
	nd.Tags, _ = c.Flags().GetString(extension.FlagTags)
	nd.DOI, _ = c.Flags().GetString(extension.FlagDOI)

	l := log.Event("doc:add", "insert").
		Author(cmd.Author()).
		Target(nd.Title).
		Detail("source", nd.Source)

	res, err := e.svc.InsertDocument(c.Context(), nd)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("doc add %q: %w", nd.Title, err))
	}
	l.ResultID(res.Document.ID).Detail("existing", res.Existing).Write(nil)

	w := writer()
	if res.Existing {
		fmt.Fprintf(w, "Already catalogued as #%d\n", res.Document.ID)
	} else {
		fmt.Fprintf(w, "Added #%d\n", res.Document.ID)
	}
	format.Document(w, res.Document)
	for _, t := range res.CreatedTags {
		fmt.Fprintf(w, "Created tag %q\n", t)
	}
	return cmd.PrintJSON(res)
}

func (e *Extension) runAddTOML(c *cobra.Command, file string) error {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	l := log.Event("doc:add", "import").
		Author(cmd.Author()).
		Target(file).
		Detail("dry_run", dryRun)

	m, err := bulk.Load(file)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	opts := bulk.Options{DryRun: dryRun}
	if cmd.JSON() {
		opts.Progress = os.Stderr
	}
	res, err := bulk.Run(c.Context(), e.svc, m, opts)
	if err != nil {
		l.Detail("inserted", len(res.Inserted)).Write(err)
		if errors.Is(err, bulk.ErrValidation) {
			err = fmt.Errorf("%s: %w", file, err)
		}
		return cmd.PrintJSONError(err)
	}
	l.Detail("inserted", len(res.Inserted)).Detail("existing", res.Existing).Write(nil)

	w := writer()
	if dryRun {
		fmt.Fprintf(w, "%d document(s) valid, nothing added\n", res.Checked)
		return cmd.PrintJSON(res)
	}
	for _, r := range res.Inserted {
		format.Document(w, r.Document)
	}
	fmt.Fprintf(w, "Added %d document(s), %d already catalogued\n", len(res.Inserted), res.Existing)
	return cmd.PrintJSON(res)
}
