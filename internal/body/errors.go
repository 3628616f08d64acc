package body

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMass indicates a mass that is not a finite positive number.
	ErrInvalidMass = errors.New("body: invalid mass (must be finite and > 0)")

	// ErrInvalidRadius indicates a radius that is not a finite positive number.
	ErrInvalidRadius = errors.New("body: invalid radius (must be finite and > 0)")
)

// ParamError wraps a construction error with the offending value.
type ParamError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s=%g)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
