// Package store defines catalog persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, so tests can run against a temp database.
package store

import (
	"encoding/json"
)

// Tag is a canonical tag value with a stable numeric identifier. Renaming a
// tag replaces Value and keeps ID.
type Tag struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// Document is a single bibliographic record.
//
// Tags is a denormalised copy of the document's tag values joined with
// commas (see internal/taglist). It is not a foreign key; the catalog
// service keeps it consistent with the tags table.
type Document struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publication string `json:"publication"`
	Volume      int    `json:"volume"`
	Year        int    `json:"year"`
	ContentID   string `json:"content_id"`
	Tags        string `json:"tags"`
	DOI         string `json:"doi"`
}

// Stats holds row counts for both tables.
type Stats struct {
	Documents int64 `json:"documents"`
	Tags      int64 `json:"tags"`
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
