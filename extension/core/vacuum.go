// vacuum.go implements the "odin vacuum" command, which removes stored
// files that no document references.
//
// Removal is irreversible, so it asks for confirmation unless --force is
// given, and --dry-run lists what would go.

package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/vacuum"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Remove stored files no document references",
		Long: `Remove files from the content store that no document references, and
report documents whose stored file is missing.

This is irreversible. Use --force to skip confirmation.`,
		Args: cobra.NoArgs,
		RunE: runVacuum,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be removed")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	svc, err := cmd.Service()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	ctx := c.Context()

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	if !dryRun && !cmd.Force() {
		if cmd.JSON() {
			return cmd.PrintJSONError(fmt.Errorf("vacuum: --force is required with -o json"))
		}
		fmt.Fprint(cmd.Out(), "Permanently remove unreferenced stored files? This cannot be undone. [y/N] ")
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	result, err := vacuum.Run(ctx, w, svc, vacuum.Options{DryRun: dryRun})

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Detail("dry_run", dryRun).
		Detail("orphans", len(result.Orphans)).
		Detail("removed", len(result.Removed)).
		Detail("missing", len(result.Missing)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(result)
}
