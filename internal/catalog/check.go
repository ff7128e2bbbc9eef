// check.go compares the documents table with the content store.
//
// Orphaned files appear when a commit fails after the copy and the cleanup
// also fails, or when a delete's file removal fails. Missing files appear
// when someone removes a file from the store by hand.

package catalog

import (
	"context"
	"errors"

	"github.com/jpl-au/odin/internal/content"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// Check reports stored files without a document and documents without a
// stored file.
func (s *Service) Check(ctx context.Context) (*service.CheckResult, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.content.IDs()
	if err != nil {
		return nil, err
	}

	res := &service.CheckResult{Orphans: []string{}, Missing: []store.Document{}}
	stored := make(map[string]bool, len(ids))
	for _, id := range ids {
		stored[id] = true
	}
	referenced := make(map[string]bool, len(docs))
	for _, d := range docs {
		referenced[d.ContentID] = true
		if !stored[d.ContentID] {
			res.Missing = append(res.Missing, d)
		}
	}
	for _, id := range ids {
		if !referenced[id] {
			res.Orphans = append(res.Orphans, id)
		}
	}
	return res, nil
}

// PruneOrphans removes each id's stored file unless a document references
// it. Files already gone, and names that are not content ids, are skipped.
func (s *Service) PruneOrphans(ctx context.Context, ids []string) ([]string, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]bool, len(docs))
	for _, d := range docs {
		referenced[d.ContentID] = true
	}

	removed := []string{}
	for _, id := range ids {
		if referenced[id] || !content.IsID(id) {
			continue
		}
		err := s.content.Remove(id)
		if errors.Is(err, content.ErrMissing) {
			continue
		}
		log.Event("catalog:prune", "remove").Detail("content_id", id).Write(err)
		if err != nil {
			return removed, err
		}
		removed = append(removed, id)
	}
	return removed, nil
}
