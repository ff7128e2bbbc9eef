// interfaces.go defines the storage abstraction for the tag and document
// catalogs.
//
// The interfaces are granular (TagReader, DocumentWriter, ...) so consumers
// only depend on what they use. Catalog groups the row operations that can
// run inside a transaction; Store adds transaction and lifecycle control.

package store

import (
	"context"
	"database/sql"
)

// TagReader defines read-only tag catalog operations.
type TagReader interface {
	// TagByID returns ErrNotFound if no tag has this id.
	TagByID(ctx context.Context, id int64) (*Tag, error)

	// TagByValue looks up a tag by its exact stored value. Callers normalise
	// the value first. Returns ErrNotFound on a miss.
	TagByValue(ctx context.Context, value string) (*Tag, error)

	// ListTags returns every tag ordered by id.
	ListTags(ctx context.Context) ([]Tag, error)
}

// TagWriter defines tag catalog mutations.
type TagWriter interface {
	// InsertTag creates the tag if absent. The returned bool reports whether
	// a new row was created; an existing tag is returned unchanged.
	InsertTag(ctx context.Context, value string) (*Tag, bool, error)

	// RenameTag replaces a tag's value in place. Returns ErrNotFound if the
	// id is unknown and ErrAlreadyExists if another tag owns the value.
	RenameTag(ctx context.Context, id int64, value string) error

	// DeleteTag removes a tag row. Returns ErrNotFound if the id is unknown.
	DeleteTag(ctx context.Context, id int64) error
}

// DocumentReader defines read-only document catalog operations.
type DocumentReader interface {
	// DocumentByID returns ErrNotFound if no document has this id.
	DocumentByID(ctx context.Context, id int64) (*Document, error)

	// DocumentByTitle looks up a document by its exact stored title.
	DocumentByTitle(ctx context.Context, title string) (*Document, error)

	// ListDocuments returns every document ordered by id.
	ListDocuments(ctx context.Context) ([]Document, error)

	// DocumentsWithTagLike returns documents whose tags column contains
	// fragment as a substring. LIKE wildcards in fragment match literally.
	DocumentsWithTagLike(ctx context.Context, fragment string) ([]Document, error)

	// Stats returns row counts.
	Stats(ctx context.Context) (*Stats, error)
}

// DocumentWriter defines document catalog mutations.
type DocumentWriter interface {
	// InsertDocument writes a new row and returns its id. The ID field of d
	// is ignored. Returns ErrAlreadyExists on a title or content id clash.
	InsertDocument(ctx context.Context, d *Document) (int64, error)

	// UpdateDocument overwrites the mutable fields of the row with d.ID.
	// ContentID is never changed.
	UpdateDocument(ctx context.Context, d *Document) error

	// UpdateDocumentTags rewrites only the tags column.
	UpdateDocumentTags(ctx context.Context, id int64, tags string) error

	// DeleteDocument removes the row. Returns ErrNotFound if absent.
	DeleteDocument(ctx context.Context, id int64) error
}

// Catalog is the set of row operations available inside a transaction.
type Catalog interface {
	TagReader
	TagWriter
	DocumentReader
	DocumentWriter
}

// Maintainer defines database lifecycle operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error
}

// Store is the full persistence interface.
type Store interface {
	Catalog
	Maintainer

	// Tx runs fn with a Catalog bound to a single transaction. The
	// transaction commits if fn returns nil and rolls back otherwise.
	Tx(ctx context.Context, fn func(c Catalog) error) error
}
