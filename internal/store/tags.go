// tags.go implements the tag catalog.
//
// Values arrive already normalised; the store compares them byte for byte.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TagByID returns the tag with the given id.
func (s *SQLiteStore) TagByID(ctx context.Context, id int64) (*Tag, error) {
	row := s.q.QueryRowContext(ctx, `SELECT id, value FROM tags WHERE id = ?`, id)
	return scanTag(row)
}

// TagByValue returns the tag with the given value.
func (s *SQLiteStore) TagByValue(ctx context.Context, value string) (*Tag, error) {
	row := s.q.QueryRowContext(ctx, `SELECT id, value FROM tags WHERE value = ?`, value)
	return scanTag(row)
}

// ListTags returns every tag ordered by id.
func (s *SQLiteStore) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, value FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Value); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// InsertTag creates the tag if it does not exist. ON CONFLICT keeps the call
// idempotent without a read-then-write race between processes.
func (s *SQLiteStore) InsertTag(ctx context.Context, value string) (*Tag, bool, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO tags (value) VALUES (?) ON CONFLICT(value) DO NOTHING`, value)
	if err != nil {
		return nil, false, fmt.Errorf("insert tag %q: %w", value, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("last insert id: %w", err)
		}
		return &Tag{ID: id, Value: value}, true, nil
	}
	t, err := s.TagByValue(ctx, value)
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}

// RenameTag replaces a tag's value, keeping its id.
func (s *SQLiteStore) RenameTag(ctx context.Context, id int64, value string) error {
	res, err := s.q.ExecContext(ctx, `UPDATE tags SET value = ? WHERE id = ?`, value, id)
	if isUnique(err) {
		return fmt.Errorf("tag %q: %w", value, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("rename tag %d: %w", id, err)
	}
	return affected(res)
}

// DeleteTag removes the tag row.
func (s *SQLiteStore) DeleteTag(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return affected(res)
}

func scanTag(row *sql.Row) (*Tag, error) {
	var t Tag
	err := row.Scan(&t.ID, &t.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	return &t, nil
}
