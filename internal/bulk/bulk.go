// Package bulk imports documents listed in a TOML manifest:
//
//	[[documents]]
//	title = "attention is all you need"
//	path = "papers/attention.pdf"
//	author = "Vaswani et al."
//	year = 2017
//	tags = "ml,nlp"
//
// Every entry is decoded and validated before anything is inserted, so a
// bad manifest leaves the catalog untouched.
package bulk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/odin/internal/progress"
	"github.com/jpl-au/odin/internal/service"
	"github.com/pelletier/go-toml/v2"
)

// Ext is the required manifest extension.
const Ext = ".toml"

// ErrValidation wraps every decode or validation failure. Nothing has been
// inserted when it is returned.
var ErrValidation = errors.New("invalid manifest")

// Entry is one [[documents]] table. Omitted fields default to empty or zero.
// ID is read so older manifests that carry one still decode; the catalog
// assigns ids itself and the value is never used.
type Entry struct {
	ID          int    `toml:"id,omitempty"`
	Title       string `toml:"title"`
	Path        string `toml:"path"`
	Author      string `toml:"author,omitempty"`
	Year        int    `toml:"year,omitempty"`
	Publication string `toml:"publication,omitempty"`
	Volume      int    `toml:"volume,omitempty"`
	Tags        string `toml:"tags,omitempty"`
	DOI         string `toml:"doi,omitempty"`
}

// Manifest is a decoded TOML file.
type Manifest struct {
	Documents []Entry `toml:"documents"`
}

// Inserter is the part of service.Service an import needs.
type Inserter interface {
	CheckDocument(d service.NewDocument) error
	InsertDocument(ctx context.Context, d service.NewDocument) (*service.InsertResult, error)
}

// Options configures an import.
type Options struct {
	DryRun   bool      // Validate only
	Progress io.Writer // Progress output; nil means stderr
}

// Result contains the outcome of an import.
type Result struct {
	Inserted []service.InsertResult `json:"inserted"`
	Existing int                    `json:"existing"` // Entries whose title was already catalogued
	Checked  int                    `json:"checked"`  // Entries validated
}

// Decode parses a manifest strictly: unknown keys are rejected.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrValidation, strict.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return &m, nil
}

// Load reads and decodes the manifest at path. Relative entry paths are
// resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	if !strings.EqualFold(filepath.Ext(path), Ext) {
		return nil, fmt.Errorf("%w: %s: not a %s file", ErrValidation, path, Ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Documents {
		p := m.Documents[i].Path
		if p != "" && !filepath.IsAbs(p) {
			m.Documents[i].Path = filepath.Join(base, p)
		}
	}
	return m, nil
}

// NewDocument converts an entry to catalog input.
func (e Entry) NewDocument() service.NewDocument {
	return service.NewDocument{
		Title:       e.Title,
		Source:      e.Path,
		Author:      e.Author,
		Publication: e.Publication,
		Volume:      e.Volume,
		Year:        e.Year,
		Tags:        e.Tags,
		DOI:         e.DOI,
	}
}

// Check validates every entry, returning all failures joined.
func (m *Manifest) Check(svc Inserter) error {
	if len(m.Documents) == 0 {
		return fmt.Errorf("%w: no [[documents]] entries", ErrValidation)
	}

	var errs []error
	seen := make(map[string]int, len(m.Documents))
	for i, e := range m.Documents {
		if err := svc.CheckDocument(e.NewDocument()); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i+1, err))
			continue
		}
		key := strings.ToLower(strings.TrimSpace(e.Title))
		if first, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("entry %d: title %q repeats entry %d", i+1, e.Title, first))
			continue
		}
		seen[key] = i + 1
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w:\n%w", ErrValidation, errors.Join(errs...))
	}
	return nil
}

// Run validates the whole manifest, then inserts each entry in order.
// Entries whose title is already catalogued are counted in Existing.
func Run(ctx context.Context, svc Inserter, m *Manifest, opts Options) (Result, error) {
	var result Result

	if err := m.Check(svc); err != nil {
		return result, err
	}
	result.Checked = len(m.Documents)
	if opts.DryRun {
		return result, nil
	}

	prog := progress.New("Importing", len(m.Documents))
	if opts.Progress != nil {
		prog = progress.NewWriter(opts.Progress, "Importing", len(m.Documents), false)
	}
	defer prog.Done()

	for i, e := range m.Documents {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		res, err := svc.InsertDocument(ctx, e.NewDocument())
		if err != nil {
			return result, fmt.Errorf("entry %d (%s): %w", i+1, e.Title, err)
		}
		prog.Step(res.Document.Title)
		if res.Existing {
			result.Existing++
			continue
		}
		result.Inserted = append(result.Inserted, *res)
	}
	return result, nil
}
