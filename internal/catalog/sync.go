// sync.go keeps the comma-joined tag string on every document consistent
// with the tags table when a tag is renamed or deleted.
//
// Candidates are found with a substring LIKE over the tags column, then
// checked token by token, so renaming "ml" never touches "html". Every
// rewrite and the tag row change run in one transaction. Because rewrites
// are computed from the current strings, running the same change twice
// leaves the catalog as it was after the first run.

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/taglist"
	"github.com/jpl-au/odin/internal/validate"
)

// RenameTag renames the tag identified by ref to value (onTagRenamed).
func (s *Service) RenameTag(ctx context.Context, ref service.TagRef, value string) (*service.TagRenameResult, error) {
	var res *service.TagRenameResult
	err := s.store.Tx(ctx, func(c store.Catalog) error {
		var err error
		res, err = planRename(ctx, c, ref, value)
		if err != nil || !res.Changed {
			return err
		}
		if err := applyRewrites(ctx, c, res.Rewrites); err != nil {
			return err
		}
		if err := c.RenameTag(ctx, res.Tag.ID, res.Tag.Value); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("rename %q to %q: %w", res.Old, res.Tag.Value, ErrTagExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Changed {
		s.fireEvent(extension.TagEvent{Type: extension.EventTagRename, ID: res.Tag.ID, Value: res.Tag.Value, Old: res.Old})
		s.fireSync(res.Old, res.Rewrites)
	}
	return res, nil
}

// PreviewRename computes RenameTag's effect without writing.
func (s *Service) PreviewRename(ctx context.Context, ref service.TagRef, value string) (*service.TagRenameResult, error) {
	return planRename(ctx, s.store, ref, value)
}

// DeleteTag removes the tag identified by ref and drops its token from every
// document (onTagDeleted).
//
// A missing tag is not an error. When ref names a value, documents that
// still carry the token are scrubbed anyway, which repairs a catalog where
// the two tables have drifted apart.
func (s *Service) DeleteTag(ctx context.Context, ref service.TagRef) (*service.TagDeleteResult, error) {
	var res *service.TagDeleteResult
	err := s.store.Tx(ctx, func(c store.Catalog) error {
		var err error
		res, err = planDelete(ctx, c, ref)
		if err != nil {
			return err
		}
		if err := applyRewrites(ctx, c, res.Rewrites); err != nil {
			return err
		}
		if res.Tag == nil {
			return nil
		}
		return c.DeleteTag(ctx, res.Tag.ID)
	})
	if err != nil {
		return nil, err
	}

	if res.Tag == nil {
		log.Event("catalog:tag", "delete").
			Target(ref.Value).
			ID(ref.ID).
			Detail("noop", true).
			Detail("documents", len(res.Rewrites)).
			Write(nil)
	} else {
		s.fireEvent(extension.TagEvent{Type: extension.EventTagDelete, ID: res.Tag.ID, Value: res.Tag.Value})
	}
	s.fireSync(res.Value, res.Rewrites)
	return res, nil
}

// PreviewDelete computes DeleteTag's effect without writing.
func (s *Service) PreviewDelete(ctx context.Context, ref service.TagRef) (*service.TagDeleteResult, error) {
	return planDelete(ctx, s.store, ref)
}

func planRename(ctx context.Context, c store.Catalog, ref service.TagRef, value string) (*service.TagRenameResult, error) {
	nv, err := validate.Tag(value)
	if err != nil {
		return nil, err
	}
	t, err := resolveTag(ctx, c, ref)
	if err != nil {
		return nil, err
	}

	res := &service.TagRenameResult{Tag: *t, Old: t.Value, Rewrites: []service.Rewrite{}}
	if t.Value == nv {
		return res, nil
	}

	other, err := c.TagByValue(ctx, nv)
	switch {
	case err == nil && other.ID != t.ID:
		return nil, fmt.Errorf("rename %q to %q: %w", t.Value, nv, ErrTagExists)
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	old := t.Value
	res.Rewrites, err = planRewrites(ctx, c, old, func(tags string) string {
		return taglist.Replace(tags, old, nv)
	})
	if err != nil {
		return nil, err
	}
	res.Tag.Value = nv
	res.Changed = true
	return res, nil
}

func planDelete(ctx context.Context, c store.Catalog, ref service.TagRef) (*service.TagDeleteResult, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("tag: %w", ErrEmptyRef)
	}

	res := &service.TagDeleteResult{Rewrites: []service.Rewrite{}}
	t, err := resolveTag(ctx, c, ref)
	switch {
	case err == nil:
		res.Tag = t
		res.Value = t.Value
		res.Deleted = true
	case errors.Is(err, store.ErrNotFound):
		if ref.ID != 0 {
			return res, nil
		}
		v, err := validate.Tag(ref.Value)
		if err != nil {
			return nil, err
		}
		res.Value = v
	default:
		return nil, err
	}

	value := res.Value
	res.Rewrites, err = planRewrites(ctx, c, value, func(tags string) string {
		return taglist.Remove(tags, value)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// planRewrites returns the documents carrying value as a whole token,
// with their tag string before and after rewrite.
func planRewrites(ctx context.Context, r store.DocumentReader, value string, rewrite func(string) string) ([]service.Rewrite, error) {
	docs, err := r.DocumentsWithTagLike(ctx, value)
	if err != nil {
		return nil, err
	}

	out := []service.Rewrite{}
	for _, d := range docs {
		if !taglist.Contains(d.Tags, value) {
			continue
		}
		after := rewrite(d.Tags)
		if after == d.Tags {
			continue
		}
		out = append(out, service.Rewrite{DocumentID: d.ID, Title: d.Title, Before: d.Tags, After: after})
	}
	return out, nil
}

func applyRewrites(ctx context.Context, w store.DocumentWriter, rewrites []service.Rewrite) error {
	for _, rw := range rewrites {
		if err := w.UpdateDocumentTags(ctx, rw.DocumentID, rw.After); err != nil {
			return fmt.Errorf("rewrite tags of %q: %w", rw.Title, err)
		}
	}
	return nil
}

func (s *Service) fireSync(tag string, rewrites []service.Rewrite) {
	for _, rw := range rewrites {
		s.fireEvent(extension.TagSyncEvent{
			Tag:        tag,
			DocumentID: rw.DocumentID,
			Title:      rw.Title,
			Before:     rw.Before,
			After:      rw.After,
		})
	}
}
