package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a particle position became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive tick rate or frame count.
	ErrInvalidConfig = errors.New("sim: invalid config")
)

// SimError wraps an error with the frame it occurred in.
type SimError struct {
	Frame    int
	Time     float64
	Particle int
	Wrapped  error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f) particle %d: %s", e.Frame, e.Time, e.Particle, e.Wrapped.Error())
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
