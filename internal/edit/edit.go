// Package edit applies field changes to a catalogued document.
//
// A tag change creates any new tag values as a side effect and prints the
// before/after tag diff alongside the updated record.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/odin/internal/diff"
	"github.com/jpl-au/odin/internal/format"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// ErrNoChanges is returned when the update sets no field.
var ErrNoChanges = errors.New("no fields to change")

// Options configures an edit operation.
type Options struct {
	Colour bool // Colourise the tag diff
}

// Result contains the outcome of an edit operation.
type Result struct {
	Before store.Document `json:"before"`
	After  store.Document `json:"after"`
}

// Run applies u to the document identified by ref.
func Run(ctx context.Context, w io.Writer, svc service.Service, ref service.Ref, u service.DocumentUpdate, opts Options) (Result, error) {
	var result Result
	if u.IsEmpty() {
		return result, ErrNoChanges
	}

	before, err := svc.Document(ctx, ref)
	if err != nil {
		return result, err
	}
	result.Before = *before

	after, err := svc.UpdateDocument(ctx, service.ByID(before.ID), u)
	if err != nil {
		return result, err
	}
	result.After = *after

	format.Document(w, *after)
	if before.Tags != after.Tags {
		fmt.Fprint(w, diff.Tags(before.Tags, after.Tags, "tags").Format(opts.Colour))
	}
	return result, nil
}
