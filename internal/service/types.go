package service

import (
	"strconv"

	"github.com/jpl-au/odin/internal/store"
)

// Ref identifies a document by id or title. Exactly one should be set; ID
// wins if both are.
type Ref struct {
	ID    int64
	Title string
}

// ByID returns a Ref for a document id.
func ByID(id int64) Ref { return Ref{ID: id} }

// ByTitle returns a Ref for a document title.
func ByTitle(title string) Ref { return Ref{Title: title} }

// IsZero reports whether neither field is set.
func (r Ref) IsZero() bool { return r.ID == 0 && r.Title == "" }

func (r Ref) String() string {
	if r.ID != 0 {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return strconv.Quote(r.Title)
}

// TagRef identifies a tag by id or value.
type TagRef struct {
	ID    int64
	Value string
}

// TagByID returns a TagRef for a tag id.
func TagByID(id int64) TagRef { return TagRef{ID: id} }

// TagByValue returns a TagRef for a tag value.
func TagByValue(v string) TagRef { return TagRef{Value: v} }

// IsZero reports whether neither field is set.
func (r TagRef) IsZero() bool { return r.ID == 0 && r.Value == "" }

func (r TagRef) String() string {
	if r.ID != 0 {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return strconv.Quote(r.Value)
}

// NewDocument is the input to InsertDocument. Unset fields default to empty
// or zero.
type NewDocument struct {
	Title       string `json:"title"`
	Source      string `json:"path"`
	Author      string `json:"author,omitempty"`
	Publication string `json:"publication,omitempty"`
	Volume      int    `json:"volume,omitempty"`
	Year        int    `json:"year,omitempty"`
	Tags        string `json:"tags,omitempty"`
	DOI         string `json:"doi,omitempty"`
}

// DocumentUpdate lists fields to change. Nil means leave as is.
type DocumentUpdate struct {
	Title       *string
	Author      *string
	Publication *string
	Volume      *int
	Year        *int
	Tags        *string
	DOI         *string
}

// IsEmpty reports whether the update changes nothing.
func (u DocumentUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Publication == nil &&
		u.Volume == nil && u.Year == nil && u.Tags == nil && u.DOI == nil
}

// InsertResult reports the outcome of InsertDocument.
type InsertResult struct {
	Document store.Document `json:"document"`
	// Existing is set when a document with the same title was already
	// catalogued. Nothing was written.
	Existing bool `json:"existing"`
	// CreatedTags lists tag values created as a side effect.
	CreatedTags []string `json:"created_tags,omitempty"`
}

// DeleteResult reports the outcome of DeleteDocument.
type DeleteResult struct {
	Document *store.Document `json:"document,omitempty"`
	Deleted  bool            `json:"deleted"`
	// Cleanup holds the stored file removal failure, if any. The row is
	// gone regardless.
	Cleanup error `json:"-"`
}

// Rewrite is one document's tag string before and after synchronisation.
type Rewrite struct {
	DocumentID int64  `json:"document_id"`
	Title      string `json:"title"`
	Before     string `json:"before"`
	After      string `json:"after"`
}

// TagRenameResult reports the outcome of RenameTag or PreviewRename.
type TagRenameResult struct {
	Tag      store.Tag `json:"tag"`
	Old      string    `json:"old"`
	Changed  bool      `json:"changed"`
	Rewrites []Rewrite `json:"rewrites"`
}

// TagDeleteResult reports the outcome of DeleteTag or PreviewDelete.
type TagDeleteResult struct {
	Tag      *store.Tag `json:"tag,omitempty"`
	Value    string     `json:"value"`
	Deleted  bool       `json:"deleted"`
	Rewrites []Rewrite  `json:"rewrites"`
}

// ContentInfo describes a stored file.
type ContentInfo struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Pages int    `json:"pages"`
}

// CheckResult reports drift between the catalog and the content store.
type CheckResult struct {
	Orphans []string         `json:"orphans"` // stored files no document references
	Missing []store.Document `json:"missing"` // documents whose stored file is absent
}
