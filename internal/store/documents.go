// documents.go implements the document catalog.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const docColumns = `id, title, author, publication, volume, year, content_id, tags, doi`

// DocumentByID returns the document with the given id.
func (s *SQLiteStore) DocumentByID(ctx context.Context, id int64) (*Document, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// DocumentByTitle returns the document with the given title.
func (s *SQLiteStore) DocumentByTitle(ctx context.Context, title string) (*Document, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents WHERE title = ?`, title)
	return scanDocument(row)
}

// ListDocuments returns every document ordered by id.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+docColumns+` FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// DocumentsWithTagLike returns documents whose tags column contains fragment.
func (s *SQLiteStore) DocumentsWithTagLike(ctx context.Context, fragment string) ([]Document, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE tags LIKE ? ESCAPE '\' ORDER BY id`,
		"%"+escapeLike(fragment)+"%")
	if err != nil {
		return nil, fmt.Errorf("find documents by tag %q: %w", fragment, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Stats returns row counts for both tables.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.q.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM documents), (SELECT COUNT(*) FROM tags)`,
	).Scan(&st.Documents, &st.Tags)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}

// InsertDocument writes a new row and returns the assigned id.
func (s *SQLiteStore) InsertDocument(ctx context.Context, d *Document) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO documents (title, author, publication, volume, year, content_id, tags, doi)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Title, d.Author, d.Publication, d.Volume, d.Year, d.ContentID, d.Tags, d.DOI)
	if isUnique(err) {
		return 0, fmt.Errorf("document %q: %w", d.Title, ErrAlreadyExists)
	}
	if err != nil {
		return 0, fmt.Errorf("insert document %q: %w", d.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// UpdateDocument overwrites every mutable column. content_id is left alone.
func (s *SQLiteStore) UpdateDocument(ctx context.Context, d *Document) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE documents SET title = ?, author = ?, publication = ?, volume = ?,
		 year = ?, tags = ?, doi = ? WHERE id = ?`,
		d.Title, d.Author, d.Publication, d.Volume, d.Year, d.Tags, d.DOI, d.ID)
	if isUnique(err) {
		return fmt.Errorf("document %q: %w", d.Title, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("update document %d: %w", d.ID, err)
	}
	return affected(res)
}

// UpdateDocumentTags rewrites the tags column of a single document.
func (s *SQLiteStore) UpdateDocumentTags(ctx context.Context, id int64, tags string) error {
	res, err := s.q.ExecContext(ctx, `UPDATE documents SET tags = ? WHERE id = ?`, tags, id)
	if err != nil {
		return fmt.Errorf("update tags of document %d: %w", id, err)
	}
	return affected(res)
}

// DeleteDocument removes the document row.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	return affected(res)
}

func scanDoc(sc scanner) (Document, error) {
	var d Document
	err := sc.Scan(&d.ID, &d.Title, &d.Author, &d.Publication, &d.Volume, &d.Year,
		&d.ContentID, &d.Tags, &d.DOI)
	return d, err
}

// scanDocument converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func scanDocument(row *sql.Row) (*Document, error) {
	d, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// scanDocuments iterates over query results, collecting documents into a slice.
func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
