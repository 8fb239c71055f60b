package compatibility

import (
	"errors"
	"fmt"
)

// IncompatibleSchemaError is the business error produced when a candidate
// revision violates the requested strategy, or violates the
// primitive-type-must-match rule. It is always surfaced to the caller and
// never retried internally.
type IncompatibleSchemaError struct {
	// Detail describes which rule was violated.
	Detail string
}

func (e *IncompatibleSchemaError) Error() string {
	return "compatibility: incompatible schema: " + e.Detail
}

// Incompatible builds an IncompatibleSchemaError with a formatted detail
// message.
func Incompatible(format string, args ...interface{}) error {
	return &IncompatibleSchemaError{Detail: fmt.Sprintf(format, args...)}
}

// IsIncompatible checks if the error is a schema incompatibility.
func IsIncompatible(err error) bool {
	var target *IncompatibleSchemaError
	return errors.As(err, &target)
}
