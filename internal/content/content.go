// Package content manages the flat blob store holding one renamed copy of
// each catalogued PDF.
//
// Files are named <content_id>.pdf inside a single directory. The catalog
// only ever records the identifier; Resolve turns it back into a path.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

var (
	// ErrIO wraps any failure reading the source or writing the store.
	ErrIO = errors.New("content store I/O failed")
	// ErrMissing is returned when a content file is not present.
	ErrMissing = errors.New("content file missing")
)

// Ext is appended to every stored file name.
const Ext = ".pdf"

// Store is a directory of content files.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if needed. A
// failure here is a configuration error; callers should abort.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty content directory", ErrIO)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}
	return &Store{dir: dir}, nil
}

// NewID returns a fresh random (v4) content identifier.
func NewID() string {
	return uuid.New().String()
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Resolve returns the path for contentID. It does not check existence.
func (s *Store) Resolve(contentID string) string {
	return filepath.Join(s.dir, contentID+Ext)
}

// Exists reports whether the file for contentID is present.
func (s *Store) Exists(contentID string) bool {
	info, err := os.Stat(s.Resolve(contentID))
	return err == nil && info.Mode().IsRegular()
}

// Put copies src into the store under contentID. The destination is written
// to a temp file and renamed, so a failed copy never leaves a partial file.
func (s *Store) Put(contentID, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, src, err)
	}
	defer f.Close()

	if err := atomic.WriteFile(s.Resolve(contentID), f); err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrIO, src, err)
	}
	return nil
}

// Remove deletes the file for contentID. A missing file returns ErrMissing.
func (s *Store) Remove(contentID string) error {
	err := os.Remove(s.Resolve(contentID))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissing, s.Resolve(contentID))
	}
	if err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrIO, contentID, err)
	}
	return nil
}

// IsID reports whether id has the shape of an identifier from NewID.
func IsID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IDs returns the content identifiers of every file in the store, sorted.
// Temporary files left by an interrupted Put are not included.
func (s *Store) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrIO, s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || filepath.Ext(name) != Ext {
			continue
		}
		// The directory may be shared with files odin never wrote.
		id := strings.TrimSuffix(name, Ext)
		if !IsID(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
