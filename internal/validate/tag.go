// tag.go implements tag value validation.
//
// Tags live inside a comma-joined string on every document, so a comma in a
// value would split it into two tokens on the next read.

package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/odin/internal/taglist"
)

// Tag validates a tag value and returns its normalised form.
//
// Validation rules:
//   - Empty after trimming rejected (meaningless label)
//   - Separator rejected (would corrupt the denormalised tag string)
//   - Null bytes rejected
func Tag(t string) (string, error) {
	norm := taglist.Normalize(t)
	if norm == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.Contains(norm, taglist.Sep) {
		return "", fmt.Errorf("%w: %q contains %q", ErrInvalidTag, t, taglist.Sep)
	}
	if strings.ContainsRune(norm, 0) {
		return "", fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return norm, nil
}

// Tags validates every token of a comma-separated list and returns the
// canonical joined form. An empty list is valid.
func Tags(list string) (string, error) {
	toks := taglist.Parse(list)
	for _, tok := range toks {
		if strings.ContainsRune(tok, 0) {
			return "", fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
		}
	}
	return strings.Join(toks, taglist.Sep), nil
}
