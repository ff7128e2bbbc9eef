// Package service defines the shared interface for catalog operations.
// Commands and extensions depend on this interface rather than concrete
// implementations, so the CLI, the MCP server and tests all talk to the
// catalog the same way.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/odin/internal/store"
)

// Service defines all catalog operations.
//
// Extensions should use catalog.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := catalog.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	docs, err := svc.FindByTag(ctx, "ml", false)
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// DB exposes the database for extensions needing custom tables.
	DB() *sql.DB

	// ContentDir returns the directory holding stored files.
	ContentDir() string

	// Stats returns row counts for both catalogs.
	Stats(ctx context.Context) (*store.Stats, error)

	// --- Tags ---

	// InsertTag normalises and validates value, then creates the tag if it
	// does not exist. The bool reports whether a row was created.
	InsertTag(ctx context.Context, value string) (*store.Tag, bool, error)

	// TagByID returns store.ErrNotFound if no tag has this id.
	TagByID(ctx context.Context, id int64) (*store.Tag, error)

	// TagByValue normalises value before lookup.
	TagByValue(ctx context.Context, value string) (*store.Tag, error)

	// Tag resolves a TagRef by id or value.
	Tag(ctx context.Context, ref TagRef) (*store.Tag, error)

	// ListTags returns every tag in id order.
	ListTags(ctx context.Context) ([]store.Tag, error)

	// RenameTag changes a tag's value and rewrites every document carrying
	// it, in one transaction. Renaming to the current value is a no-op.
	RenameTag(ctx context.Context, ref TagRef, value string) (*TagRenameResult, error)

	// DeleteTag removes a tag and scrubs it from every document, in one
	// transaction. A missing tag reports Deleted=false without error.
	DeleteTag(ctx context.Context, ref TagRef) (*TagDeleteResult, error)

	// PreviewRename computes what RenameTag would do without writing.
	PreviewRename(ctx context.Context, ref TagRef, value string) (*TagRenameResult, error)

	// PreviewDelete computes what DeleteTag would do without writing.
	PreviewDelete(ctx context.Context, ref TagRef) (*TagDeleteResult, error)

	// --- Documents ---

	// InsertDocument validates the source, stores a copy and writes the
	// row. A duplicate title returns the existing record with Existing set.
	InsertDocument(ctx context.Context, d NewDocument) (*InsertResult, error)

	// CheckDocument runs every validation InsertDocument would, without
	// writing anything.
	CheckDocument(d NewDocument) error

	// DocumentByID returns store.ErrNotFound if no document has this id.
	DocumentByID(ctx context.Context, id int64) (*store.Document, error)

	// DocumentByTitle normalises title before lookup.
	DocumentByTitle(ctx context.Context, title string) (*store.Document, error)

	// Document resolves a Ref by id or title.
	Document(ctx context.Context, ref Ref) (*store.Document, error)

	// ListDocuments returns every document in id order.
	ListDocuments(ctx context.Context) ([]store.Document, error)

	// FindByTag returns documents whose tag string contains fragment. With
	// exact set, only documents carrying fragment as a whole tag match.
	FindByTag(ctx context.Context, fragment string, exact bool) ([]store.Document, error)

	// UpdateDocument applies the non-nil fields of u.
	UpdateDocument(ctx context.Context, ref Ref, u DocumentUpdate) (*store.Document, error)

	// DeleteDocument removes the row, then best-effort removes the stored
	// file. File removal failures are reported in DeleteResult.Cleanup.
	DeleteDocument(ctx context.Context, ref Ref) (*DeleteResult, error)

	// StoredPath returns the content file path for d, or store.ErrNotFound
	// if the file is absent.
	StoredPath(d store.Document) (string, error)

	// Info describes the stored file for d.
	Info(d store.Document) (*ContentInfo, error)

	// --- Maintenance ---

	// Check compares the documents table with the content store.
	Check(ctx context.Context) (*CheckResult, error)

	// PruneOrphans removes the given stored files if no document references
	// them, returning the ids actually removed.
	PruneOrphans(ctx context.Context, ids []string) ([]string, error)
}
