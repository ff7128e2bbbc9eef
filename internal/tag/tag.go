// Package tag provides tag catalog operations for the CLI layer.
//
// This package orchestrates tag add/list/modify/rm, handling both the
// service calls and output formatting. Modify and rm print the document
// rewrites the synchroniser made (or would make, with DryRun) as diffs.
package tag

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/odin/internal/diff"
	"github.com/jpl-au/odin/internal/format"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/taglist"
)

// Options configures tag modify and rm.
type Options struct {
	DryRun bool // Compute rewrites without writing
	Colour bool // Colourise diffs
}

// Added is one value handled by Add.
type Added struct {
	Tag     store.Tag `json:"tag"`
	Created bool      `json:"created"`
}

// AddResult contains the outcome of Add.
type AddResult struct {
	Added []Added     `json:"added"`
	Tags  []store.Tag `json:"tags"`
}

// Add creates every tag in a comma-separated list. Values already catalogued
// are reported with Created=false. The full tag listing is printed after.
func Add(ctx context.Context, w io.Writer, svc service.Service, values string) (AddResult, error) {
	var result AddResult

	tokens := taglist.Parse(values)
	if len(tokens) == 0 {
		return result, fmt.Errorf("no tag values in %q", values)
	}

	for _, v := range tokens {
		t, created, err := svc.InsertTag(ctx, v)
		if err != nil {
			return result, err
		}
		result.Added = append(result.Added, Added{Tag: *t, Created: created})
		if created {
			fmt.Fprintf(w, "Added tag #%d %q\n", t.ID, t.Value)
		} else {
			fmt.Fprintf(w, "Tag #%d %q already exists\n", t.ID, t.Value)
		}
	}

	tags, err := List(ctx, w, svc)
	if err != nil {
		return result, err
	}
	result.Tags = tags
	return result, nil
}

// List prints every tag and returns them.
func List(ctx context.Context, w io.Writer, svc service.Service) ([]store.Tag, error) {
	tags, err := svc.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	format.Tags(w, tags)
	return tags, nil
}

// Modify renames the tag identified by ref and rewrites every document
// carrying it.
func Modify(ctx context.Context, w io.Writer, svc service.Service, ref service.TagRef, value string, opts Options) (*service.TagRenameResult, error) {
	var (
		res *service.TagRenameResult
		err error
	)
	if opts.DryRun {
		res, err = svc.PreviewRename(ctx, ref, value)
	} else {
		res, err = svc.RenameTag(ctx, ref, value)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case !res.Changed:
		fmt.Fprintf(w, "Tag #%d is already %q\n", res.Tag.ID, res.Tag.Value)
		return res, nil
	case opts.DryRun:
		fmt.Fprintf(w, "Would rename tag #%d %q to %q\n", res.Tag.ID, res.Old, res.Tag.Value)
	default:
		fmt.Fprintf(w, "Renamed tag #%d %q to %q\n", res.Tag.ID, res.Old, res.Tag.Value)
	}
	diff.Rewrites(w, res.Rewrites, opts.Colour)

	if !opts.DryRun {
		if _, err := List(ctx, w, svc); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Remove deletes the tag identified by ref and scrubs it from every
// document. A tag that does not exist is not an error.
func Remove(ctx context.Context, w io.Writer, svc service.Service, ref service.TagRef, opts Options) (*service.TagDeleteResult, error) {
	var (
		res *service.TagDeleteResult
		err error
	)
	if opts.DryRun {
		res, err = svc.PreviewDelete(ctx, ref)
	} else {
		res, err = svc.DeleteTag(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case res.Tag == nil && len(res.Rewrites) == 0:
		fmt.Fprintf(w, "No tag %s\n", ref)
		return res, nil
	case opts.DryRun:
		fmt.Fprintf(w, "Would delete tag %q\n", res.Value)
	default:
		fmt.Fprintf(w, "Deleted tag %q\n", res.Value)
	}
	diff.Rewrites(w, res.Rewrites, opts.Colour)

	if !opts.DryRun {
		if _, err := List(ctx, w, svc); err != nil {
			return res, err
		}
	}
	return res, nil
}
