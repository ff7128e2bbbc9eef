// source.go checks files offered to the content store.
//
// Only the extension and size are checked here. Parsing the file as a PDF is
// optional and lives in internal/content, which owns the PDF reader.

package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the only accepted source extension, compared case-insensitively.
const Ext = ".pdf"

// Source validates that path names an existing regular file with a .pdf
// extension no larger than maxSize bytes (0 means no limit). It returns the
// file info so callers need not stat again.
func Source(path string, maxSize int64) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidSource)
	}
	if !strings.EqualFold(filepath.Ext(path), Ext) {
		return nil, fmt.Errorf("%w: %s is not a %s file", ErrInvalidSource, path, Ext)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrInvalidSource, path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrInvalidSource, path, info.Size(), maxSize)
	}
	return info, nil
}
