// Package validate provides input validation for odin's domain types.
//
// This package enforces data integrity rules at the boundary between user
// input and the storage layer. Each validation function returns nil (or the
// normalised value) on success and a wrapped sentinel on failure.
//
// # Validation Functions
//
// Tag validates and normalises tag values.
// Title validates and normalises document titles.
// Source checks that a file can be accepted into the content store.
// Field range-checks numeric bibliographic fields.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go.
// Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidSource) {
//	    // handle rejected file
//	}
package validate
