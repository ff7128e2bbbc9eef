// Package cat shows a single document with its stored file details.
//
// Two renderings exist: the framed plain-text record used for pipes and
// logs, and a Markdown summary that the CLI renders on a terminal.
package cat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/odin/internal/format"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/taglist"
)

// Result contains the outcome of a show operation.
type Result struct {
	Document store.Document       `json:"document"`
	File     *service.ContentInfo `json:"file,omitempty"`
}

// Lookup resolves ref and describes its stored file. A missing file is not
// an error; File is nil.
func Lookup(ctx context.Context, svc service.Service, ref service.Ref) (Result, error) {
	d, err := svc.Document(ctx, ref)
	if err != nil {
		return Result{}, err
	}
	result := Result{Document: *d}
	if info, err := svc.Info(*d); err == nil {
		result.File = info
	}
	return result, nil
}

// Run resolves ref and writes the framed record to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, ref service.Ref) (Result, error) {
	result, err := Lookup(ctx, svc, ref)
	if err != nil {
		return result, err
	}
	format.Info(w, result.Document, result.File)
	return result, nil
}

// Markdown renders r as a Markdown summary.
func Markdown(r Result) string {
	d := r.Document
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- **%s:** %s\n", label, value)
		}
	}
	num := func(n int) string {
		if n == 0 {
			return ""
		}
		return fmt.Sprint(n)
	}

	row("ID", fmt.Sprint(d.ID))
	row("Author", d.Author)
	row("Publication", d.Publication)
	row("Volume", num(d.Volume))
	row("Year", num(d.Year))
	row("DOI", d.DOI)
	if toks := taglist.Parse(d.Tags); len(toks) > 0 {
		row("Tags", "`"+strings.Join(toks, "` `")+"`")
	}

	b.WriteString("\n## File\n\n")
	if r.File == nil {
		fmt.Fprintf(&b, "_missing: %s.pdf_\n", d.ContentID)
		return b.String()
	}
	row("Path", "`"+r.File.Path+"`")
	row("Size", fmt.Sprintf("%d bytes", r.File.Size))
	row("Pages", num(r.File.Pages))
	return b.String()
}
