// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because validation failures don't carry
// additional context beyond the category. Detailed messages are provided by
// wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidTag    = errors.New("invalid tag")
	ErrInvalidTitle  = errors.New("invalid title")
	ErrInvalidSource = errors.New("invalid source")
	ErrInvalidField  = errors.New("invalid field")
)
