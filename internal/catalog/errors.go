package catalog

import (
	"errors"

	"github.com/jpl-au/odin/internal/store"
)

var (
	// ErrNotFound is store.ErrNotFound, re-exported so callers of the
	// catalog need not import the store.
	ErrNotFound = store.ErrNotFound
	// ErrDuplicateTitle is returned when a title change would collide with
	// another document. On insert a duplicate is advisory, see
	// service.InsertResult.Existing.
	ErrDuplicateTitle = errors.New("a document with this title already exists")
	// ErrTagExists is returned when renaming onto a value another tag owns.
	ErrTagExists = errors.New("a tag with this value already exists")
	// ErrEmptyRef is returned when neither an id nor a name was given.
	ErrEmptyRef = errors.New("an id or a name is required")
)
