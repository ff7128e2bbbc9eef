package validate

import (
	"fmt"
	"strings"
)

// Title validates a document title and returns its normalised form.
// Titles are compared case-insensitively, so the stored form is lowercase.
func Title(t string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(t))
	if norm == "" {
		return "", fmt.Errorf("%w: empty title", ErrInvalidTitle)
	}
	if strings.ContainsRune(norm, 0) {
		return "", fmt.Errorf("%w: null byte in title", ErrInvalidTitle)
	}
	return norm, nil
}

// MaxField is the upper bound for year and volume.
const MaxField = 65535

// Field range-checks a numeric bibliographic field such as year or volume.
func Field(name string, v int) error {
	if v < 0 || v > MaxField {
		return fmt.Errorf("%w: %s %d out of range [0, %d]", ErrInvalidField, name, v, MaxField)
	}
	return nil
}
