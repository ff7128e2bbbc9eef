// Package exporter writes catalogued documents to a directory as a manifest
// plus the stored PDFs, in the layout "odin doc add --toml" reads back:
//
//	<dst>/odin.toml
//	<dst>/files/<content_id>.pdf
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/odin/internal/bulk"
	"github.com/jpl-au/odin/internal/progress"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the manifest file written into the destination.
const ManifestName = "odin" + bulk.Ext

// FilesDir holds the copied PDFs, relative to the destination.
const FilesDir = "files"

// Options configures an export operation.
type Options struct {
	Tag      string    // Only documents whose tags contain this fragment
	Exact    bool      // Match Tag as a whole token
	Force    bool      // Overwrite existing files
	Progress io.Writer // Progress output; nil means stderr
}

// Result contains the outcome of an export operation.
type Result struct {
	Manifest string   `json:"manifest"`
	Exported int      `json:"exported"`
	Missing  []string `json:"missing,omitempty"` // Titles skipped because the stored file is absent
}

// Run exports the selected documents into dst.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	var (
		docs []store.Document
		err  error
	)
	if opts.Tag != "" {
		docs, err = svc.FindByTag(ctx, opts.Tag, opts.Exact)
	} else {
		docs, err = svc.ListDocuments(ctx)
	}
	if err != nil {
		return result, err
	}
	if len(docs) == 0 {
		return result, errors.New("no documents to export")
	}

	if err := os.MkdirAll(filepath.Join(dst, FilesDir), 0o755); err != nil {
		return result, fmt.Errorf("creating destination: %w", err)
	}

	// os.Root keeps every write inside dst.
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if !opts.Force {
		if _, err := root.Stat(ManifestName); err == nil {
			return result, fmt.Errorf("file exists: %s (use --force to overwrite)", filepath.Join(dst, ManifestName))
		}
	}

	prog := progress.New("Exporting", len(docs))
	if opts.Progress != nil {
		prog = progress.NewWriter(opts.Progress, "Exporting", len(docs), false)
	}
	defer prog.Done()

	var m bulk.Manifest
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		src, err := svc.StoredPath(d)
		if errors.Is(err, store.ErrNotFound) {
			result.Missing = append(result.Missing, d.Title)
			fmt.Fprintf(w, "Skipped: #%d %s (stored file missing)\n", d.ID, d.Title)
			continue
		}
		if err != nil {
			return result, err
		}

		rel := filepath.Join(FilesDir, d.ContentID+".pdf")
		if err := copyInRoot(root, rel, src, opts.Force); err != nil {
			return result, err
		}
		m.Documents = append(m.Documents, entry(d, rel))
		prog.Step(d.Title)
		result.Exported++
		fmt.Fprintf(w, "Exported: #%d %s -> %s\n", d.ID, d.Title, filepath.Join(dst, rel))
	}

	if err := writeManifest(root, &m); err != nil {
		return result, err
	}
	result.Manifest = filepath.Join(dst, ManifestName)
	fmt.Fprintf(w, "Wrote %s (%d documents)\n", result.Manifest, result.Exported)
	return result, nil
}

func entry(d store.Document, path string) bulk.Entry {
	return bulk.Entry{
		Title:       d.Title,
		Path:        filepath.ToSlash(path),
		Author:      d.Author,
		Year:        d.Year,
		Publication: d.Publication,
		Volume:      d.Volume,
		Tags:        d.Tags,
		DOI:         d.DOI,
	}
}

func writeManifest(root *os.Root, m *bulk.Manifest) error {
	f, err := root.OpenFile(ManifestName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return f.Close()
}

// copyInRoot copies src to name within root.
func copyInRoot(root *os.Root, name, src string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	defer in.Close()

	out, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return out.Close()
}
