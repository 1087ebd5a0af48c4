// Package calcerr holds the error returned when a calculation input is
// outside its physical domain.
package calcerr

import "fmt"

type InvalidInputError struct {
	Field  string `json:"field"`
	Reason string `json:"error"`
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
