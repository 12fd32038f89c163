package domain

import "fmt"

// InvalidInputError reports an input rejected before any simulation work starts.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NumericalInstabilityError is returned when too many iterations produced a
// non-finite net worth for the aggregate to be trusted.
type NumericalInstabilityError struct {
	Valid     int
	Requested int
	MinValid  int
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("numerical instability: only %d of %d iterations produced finite net worth (need at least %d)",
		e.Valid, e.Requested, e.MinValid)
}
