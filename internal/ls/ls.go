// Package ls provides document listing with tag filtering.
//
// A tag filter matches as a substring of the stored tag string by default,
// so "ml" also finds documents tagged "html". Exact restricts the match to
// whole tags.
package ls

import (
	"context"
	"io"

	"github.com/jpl-au/odin/internal/format"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// Options configures a list operation.
type Options struct {
	Tag   string // Filter by tag fragment
	Exact bool   // Match Tag as a whole token
}

// Run lists documents, framed, and returns them.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) ([]store.Document, error) {
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
		return nil, err
	}
	if docs == nil {
		docs = []store.Document{}
	}

	format.Documents(w, docs)
	return docs, nil
}
