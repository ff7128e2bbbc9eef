// tags.go implements tag catalog reads and inserts. Rename and delete live
// in sync.go because they rewrite documents.

package catalog

import (
	"context"
	"fmt"

	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/taglist"
	"github.com/jpl-au/odin/internal/validate"
)

// InsertTag creates the tag if it does not exist and returns it. Inserting
// an existing value returns the existing row with created=false.
func (s *Service) InsertTag(ctx context.Context, value string) (*store.Tag, bool, error) {
	v, err := validate.Tag(value)
	if err != nil {
		return nil, false, err
	}
	t, created, err := s.store.InsertTag(ctx, v)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.fireEvent(extension.TagEvent{Type: extension.EventTagAdd, ID: t.ID, Value: t.Value})
	}
	return t, created, nil
}

// TagByID returns the tag with the given id.
func (s *Service) TagByID(ctx context.Context, id int64) (*store.Tag, error) {
	return s.store.TagByID(ctx, id)
}

// TagByValue returns the tag with the normalised value.
func (s *Service) TagByValue(ctx context.Context, value string) (*store.Tag, error) {
	return s.store.TagByValue(ctx, taglist.Normalize(value))
}

// Tag resolves ref by id, or by value when no id is given.
func (s *Service) Tag(ctx context.Context, ref service.TagRef) (*store.Tag, error) {
	return resolveTag(ctx, s.store, ref)
}

// ListTags returns every tag in id order.
func (s *Service) ListTags(ctx context.Context) ([]store.Tag, error) {
	return s.store.ListTags(ctx)
}

func resolveTag(ctx context.Context, r store.TagReader, ref service.TagRef) (*store.Tag, error) {
	switch {
	case ref.ID != 0:
		t, err := r.TagByID(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", ref, err)
		}
		return t, nil
	case ref.Value != "":
		t, err := r.TagByValue(ctx, taglist.Normalize(ref.Value))
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", ref, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("tag: %w", ErrEmptyRef)
	}
}

// ensureTags creates every token of a canonical tag string. It returns the
// values that were new.
func ensureTags(ctx context.Context, c store.TagWriter, tags string) ([]string, error) {
	var created []string
	for _, tok := range taglist.Parse(tags) {
		_, ok, err := c.InsertTag(ctx, tok)
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, tok)
		}
	}
	return created, nil
}

func (s *Service) fireTagsCreated(ctx context.Context, values []string) {
	for _, v := range values {
		t, err := s.store.TagByValue(ctx, v)
		if err != nil {
			log.Event("catalog:event", "lookup").Target(v).Write(err)
			continue
		}
		s.fireEvent(extension.TagEvent{Type: extension.EventTagAdd, ID: t.ID, Value: t.Value})
	}
}
