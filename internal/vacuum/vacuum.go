// Package vacuum reclaims content store space by removing stored files that
// no document references, and reports documents whose file has gone.
package vacuum

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// Options configures a vacuum run.
type Options struct {
	DryRun bool // Report without removing
}

// Result reports what was found and removed.
type Result struct {
	Orphans []string         `json:"orphans"` // Unreferenced stored files found
	Removed []string         `json:"removed"` // Files removed (empty in dry-run mode)
	Missing []store.Document `json:"missing"` // Documents without a stored file
}

// Run finds orphaned files and removes them unless DryRun is set. Removal
// is irreversible; documents with missing files are reported, not changed.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	check, err := svc.Check(ctx)
	if err != nil {
		return result, err
	}
	result.Orphans = check.Orphans
	result.Missing = check.Missing
	result.Removed = []string{}

	for _, d := range check.Missing {
		fmt.Fprintf(w, "Missing file: #%d %s (%s)\n", d.ID, d.Title, d.ContentID)
	}

	if len(check.Orphans) == 0 {
		fmt.Fprintln(w, "No orphaned files")
		return result, nil
	}

	if opts.DryRun {
		for _, id := range check.Orphans {
			fmt.Fprintf(w, "Would remove: %s\n", id)
		}
		return result, nil
	}

	result.Removed, err = svc.PruneOrphans(ctx, check.Orphans)
	for _, id := range result.Removed {
		fmt.Fprintf(w, "Removed: %s\n", id)
	}
	if err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Vacuumed %d file(s)\n", len(result.Removed))
	return result, nil
}
