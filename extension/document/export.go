// export.go implements the "odin doc export" command.

package document

import (
	"fmt"
	"os"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/exporter"
	"github.com/jpl-au/odin/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <dir> [--tag F] [--exact]",
		Short: "Copy documents and a TOML manifest to a directory",
		Long: `Write odin.toml and files/<uuid>.pdf under <dir>.

The manifest can be loaded into another catalog with
"odin doc add --toml <dir>/odin.toml". Use --force to overwrite an
earlier export.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	c.Flags().String(extension.FlagTag, "", "Only documents whose tags contain this fragment")
	c.Flags().Bool(extension.FlagExact, false, "Match --tag as a whole tag")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	opts := exporter.Options{Force: cmd.Force()}
	opts.Tag, _ = c.Flags().GetString(extension.FlagTag)
	opts.Exact, _ = c.Flags().GetBool(extension.FlagExact)
	if cmd.JSON() {
		opts.Progress = os.Stderr
	}

	l := log.Event("doc:export", "export").
		Author(cmd.Author()).
		Target(dst).
		Detail("tag", opts.Tag)

	res, err := exporter.Run(c.Context(), writer(), e.svc, dst, opts)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("doc export %q: %w", dst, err))
	}

	for _, title := range res.Missing {
		cmd.Warn("stored file missing for %q", title)
	}
	l.Detail("exported", res.Exported).Detail("missing", len(res.Missing)).Write(nil)
	return cmd.PrintJSON(res)
}
