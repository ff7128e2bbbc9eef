// pdf.go reads page counts with a pure Go PDF parser. odin never extracts
// text; opening the file is enough to prove it parses.

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dslipak/pdf"
)

// ErrNotPDF is returned when a file cannot be parsed as a PDF.
var ErrNotPDF = errors.New("not a valid PDF")

// CountPages opens path and returns its page count.
func CountPages(path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotPDF, err)
	}
	return r.NumPage(), nil
}

// Verify reports whether path parses as a PDF.
func Verify(path string) error {
	_, err := CountPages(path)
	return err
}

// Pages returns the page count of the stored file for contentID.
func (s *Store) Pages(contentID string) (int, error) {
	n, err := CountPages(s.Resolve(contentID))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrMissing, s.Resolve(contentID))
	}
	return n, err
}
