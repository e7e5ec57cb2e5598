package validate

import (
	"fmt"
	"strings"

	"github.com/01moynul/product-catalog/internal/schema"
)

// ErrKind discriminates the expected, caller-recoverable validation
// failures. Anything else coming out of this package is an internal
// store error wrapped with %w.
type ErrKind int

const (
	ErrMissingFields ErrKind = iota
	ErrTypeMismatch
	ErrNullNotAllowed
	ErrLengthExceeded
	ErrNotAList
	ErrNotAnInteger
	ErrCategoryCount
	ErrProductExpired
)

// Error carries the offending field and context for one validation
// failure. The pipeline is fail-fast: the first Error produced is the
// one the client sees, formatted by Error().
type Error struct {
	Kind     ErrKind
	Field    string      // field or key the failure is about
	Value    any         // offending value, when one exists
	Expected schema.Kind // desired type for ErrTypeMismatch
	Limit    int         // bound for ErrLengthExceeded
	Missing  []string    // names for ErrMissingFields
	Label    string      // message prefix for ErrNotAnInteger ("Category", "Brand id")
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMissingFields:
		return fmt.Sprintf("Missing required field(s): %s", strings.Join(e.Missing, ", "))
	case ErrTypeMismatch:
		return fmt.Sprintf("Key '%s' with value '%v' of type '%s' does not match desired type '%s'",
			e.Field, e.Value, schema.TypeName(e.Value), e.Expected)
	case ErrNullNotAllowed:
		return fmt.Sprintf("Key '%s' must be non-empty", e.Field)
	case ErrLengthExceeded:
		return fmt.Sprintf("Key '%s' does not match desired length of %d", e.Field, e.Limit)
	case ErrNotAList:
		return fmt.Sprintf("Key '%s' must be a list", e.Field)
	case ErrNotAnInteger:
		return fmt.Sprintf("%s '%v' must be an integer, not '%s'", e.Label, e.Value, schema.TypeName(e.Value))
	case ErrCategoryCount:
		return "Categories count mismatch"
	case ErrProductExpired:
		return "Product Expired"
	}
	return "validation failed"
}

// AsError returns err as a *Error when it is one, so handlers can split
// 400s from 500s without string matching.
func AsError(err error) (*Error, bool) {
	verr, ok := err.(*Error)
	return verr, ok
}
