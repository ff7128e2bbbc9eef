// documents.go implements the document catalog operations.
//
// Inserting writes the row, creates any new tags and copies the source file
// inside one transaction. The copy runs last so a failure rolls the row and
// the tags back; a commit failure after the copy removes the stored file.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/content"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/taglist"
	"github.com/jpl-au/odin/internal/validate"
)

// InsertDocument validates nd, stores a copy of its source and catalogues it.
//
// A document whose normalised title is already catalogued is not an error:
// the existing record is returned with Existing set and nothing is written.
func (s *Service) InsertDocument(ctx context.Context, nd service.NewDocument) (*service.InsertResult, error) {
	d, err := s.prepare(nd)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.DocumentByTitle(ctx, d.Title)
	if err == nil {
		log.Event("catalog:insert", "duplicate").
			Target(d.Title).
			ResultID(existing.ID).
			Write(nil)
		return &service.InsertResult{Document: *existing, Existing: true}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	d.ContentID = content.NewID()
	var created []string
	var copied bool
	err = s.store.Tx(ctx, func(c store.Catalog) error {
		id, err := c.InsertDocument(ctx, &d)
		if errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("insert %q: %w", d.Title, ErrDuplicateTitle)
		}
		if err != nil {
			return err
		}
		d.ID = id

		if created, err = ensureTags(ctx, c, d.Tags); err != nil {
			return err
		}

		if err := s.content.Put(d.ContentID, nd.Source); err != nil {
			return err
		}
		copied = true
		return nil
	})
	if err != nil {
		if copied {
			s.cleanup(d.ContentID)
		}
		return nil, err
	}

	s.fireTagsCreated(ctx, created)
	s.fireEvent(extension.DocumentEvent{
		Type:      extension.EventDocumentInsert,
		ID:        d.ID,
		Title:     d.Title,
		ContentID: d.ContentID,
	})
	return &service.InsertResult{Document: d, CreatedTags: created}, nil
}

// prepare validates every field of nd and the source file, returning the
// row to write. Nothing is persisted.
func (s *Service) prepare(nd service.NewDocument) (store.Document, error) {
	title, err := validate.Title(nd.Title)
	if err != nil {
		return store.Document{}, err
	}
	if err := validate.Field("year", nd.Year); err != nil {
		return store.Document{}, err
	}
	if err := validate.Field("volume", nd.Volume); err != nil {
		return store.Document{}, err
	}
	tags, err := validate.Tags(nd.Tags)
	if err != nil {
		return store.Document{}, err
	}
	if err := s.CheckSource(nd.Source); err != nil {
		return store.Document{}, err
	}

	return store.Document{
		Title:       title,
		Author:      nd.Author,
		Publication: nd.Publication,
		Volume:      nd.Volume,
		Year:        nd.Year,
		Tags:        tags,
		DOI:         nd.DOI,
	}, nil
}

// CheckDocument reports whether nd would pass InsertDocument's validation.
func (s *Service) CheckDocument(nd service.NewDocument) error {
	_, err := s.prepare(nd)
	return err
}

// CheckSource reports whether path would be accepted by InsertDocument.
func (s *Service) CheckSource(path string) error {
	if _, err := validate.Source(path, s.maxSource); err != nil {
		return err
	}
	if s.verifyPDF {
		if err := content.Verify(path); err != nil {
			return fmt.Errorf("%w: %s: %w", validate.ErrInvalidSource, path, err)
		}
	}
	return nil
}

// DocumentByID returns the document with the given id.
func (s *Service) DocumentByID(ctx context.Context, id int64) (*store.Document, error) {
	return s.store.DocumentByID(ctx, id)
}

// DocumentByTitle returns the document with the normalised title.
func (s *Service) DocumentByTitle(ctx context.Context, title string) (*store.Document, error) {
	return s.store.DocumentByTitle(ctx, normalizeTitle(title))
}

// Document resolves ref by id, or by title when no id is given.
func (s *Service) Document(ctx context.Context, ref service.Ref) (*store.Document, error) {
	return resolveDocument(ctx, s.store, ref)
}

// ListDocuments returns every document in id order.
func (s *Service) ListDocuments(ctx context.Context) ([]store.Document, error) {
	return s.store.ListDocuments(ctx)
}

// FindByTag returns documents whose tag string contains fragment. The match
// is a plain substring unless exact is set, in which case fragment must be
// one whole tag.
func (s *Service) FindByTag(ctx context.Context, fragment string, exact bool) ([]store.Document, error) {
	fragment = taglist.Normalize(fragment)
	docs, err := s.store.DocumentsWithTagLike(ctx, fragment)
	if err != nil || !exact {
		return docs, err
	}

	out := docs[:0]
	for _, d := range docs {
		if taglist.Contains(d.Tags, fragment) {
			out = append(out, d)
		}
	}
	return out, nil
}

// UpdateDocument applies the non-nil fields of u to the document ref names.
// New tags are created first. A new title must not belong to another
// document.
func (s *Service) UpdateDocument(ctx context.Context, ref service.Ref, u service.DocumentUpdate) (*store.Document, error) {
	var out *store.Document
	var created []string
	err := s.store.Tx(ctx, func(c store.Catalog) error {
		d, err := resolveDocument(ctx, c, ref)
		if err != nil {
			return err
		}
		if err := applyUpdate(ctx, c, d, u); err != nil {
			return err
		}
		if u.Tags != nil {
			if created, err = ensureTags(ctx, c, d.Tags); err != nil {
				return err
			}
		}
		if err := c.UpdateDocument(ctx, d); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("rename to %q: %w", d.Title, ErrDuplicateTitle)
			}
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.fireTagsCreated(ctx, created)
	s.fireEvent(extension.DocumentEvent{
		Type:      extension.EventDocumentUpdate,
		ID:        out.ID,
		Title:     out.Title,
		ContentID: out.ContentID,
	})
	return out, nil
}

func applyUpdate(ctx context.Context, c store.DocumentReader, d *store.Document, u service.DocumentUpdate) error {
	if u.Title != nil {
		title, err := validate.Title(*u.Title)
		if err != nil {
			return err
		}
		if title != d.Title {
			other, err := c.DocumentByTitle(ctx, title)
			switch {
			case err == nil && other.ID != d.ID:
				return fmt.Errorf("rename to %q: %w", title, ErrDuplicateTitle)
			case err != nil && !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
		d.Title = title
	}
	if u.Author != nil {
		d.Author = *u.Author
	}
	if u.Publication != nil {
		d.Publication = *u.Publication
	}
	if u.Volume != nil {
		if err := validate.Field("volume", *u.Volume); err != nil {
			return err
		}
		d.Volume = *u.Volume
	}
	if u.Year != nil {
		if err := validate.Field("year", *u.Year); err != nil {
			return err
		}
		d.Year = *u.Year
	}
	if u.Tags != nil {
		tags, err := validate.Tags(*u.Tags)
		if err != nil {
			return err
		}
		d.Tags = tags
	}
	if u.DOI != nil {
		d.DOI = *u.DOI
	}
	return nil
}

// DeleteDocument removes the document ref names, then its stored file.
//
// A title that matches nothing is a no-op reporting Deleted=false; an id
// that matches nothing is ErrNotFound. Failing to remove the file never
// fails the call; it is logged and returned in Cleanup.
func (s *Service) DeleteDocument(ctx context.Context, ref service.Ref) (*service.DeleteResult, error) {
	d, err := s.Document(ctx, ref)
	if errors.Is(err, store.ErrNotFound) && ref.ID == 0 {
		log.Event("catalog:delete", "delete").
			Target(ref.Title).
			Detail("noop", true).
			Write(nil)
		return &service.DeleteResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteDocument(ctx, d.ID); err != nil {
		return nil, fmt.Errorf("delete %q: %w", d.Title, err)
	}

	res := &service.DeleteResult{Document: d, Deleted: true}
	if err := s.content.Remove(d.ContentID); err != nil {
		res.Cleanup = err
		log.Event("catalog:cleanup", "warning").
			Target(d.Title).
			ID(d.ID).
			Detail("content_id", d.ContentID).
			Write(err)
	}

	s.fireEvent(extension.DocumentEvent{
		Type:      extension.EventDocumentDelete,
		ID:        d.ID,
		Title:     d.Title,
		ContentID: d.ContentID,
	})
	return res, nil
}

// StoredPath returns the stored file path for d. Returns ErrNotFound if the
// file is absent.
func (s *Service) StoredPath(d store.Document) (string, error) {
	if !s.content.Exists(d.ContentID) {
		return "", fmt.Errorf("content of %q: %w", d.Title, ErrNotFound)
	}
	return s.content.Resolve(d.ContentID), nil
}

// Info describes the stored file for d. Pages is 0 if the file does not
// parse as a PDF.
func (s *Service) Info(d store.Document) (*service.ContentInfo, error) {
	p, err := s.StoredPath(d)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", content.ErrIO, err)
	}
	pages, err := s.content.Pages(d.ContentID)
	if err != nil && !errors.Is(err, content.ErrNotPDF) {
		return nil, err
	}
	return &service.ContentInfo{Path: p, Size: info.Size(), Pages: pages}, nil
}

// cleanup removes a stored file after a failed insert.
func (s *Service) cleanup(contentID string) {
	if err := s.content.Remove(contentID); err != nil {
		log.Event("catalog:cleanup", "warning").
			Detail("content_id", contentID).
			Write(err)
	}
}

func resolveDocument(ctx context.Context, r store.DocumentReader, ref service.Ref) (*store.Document, error) {
	switch {
	case ref.ID != 0:
		d, err := r.DocumentByID(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", ref, err)
		}
		return d, nil
	case ref.Title != "":
		d, err := r.DocumentByTitle(ctx, normalizeTitle(ref.Title))
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", ref, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("document: %w", ErrEmptyRef)
	}
}

func normalizeTitle(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
