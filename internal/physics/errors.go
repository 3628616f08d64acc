package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBounds indicates a non-positive or non-finite world size.
	ErrInvalidBounds = errors.New("physics: world bounds must be positive")

	// ErrInvalidEpsilon indicates a non-positive degenerate separation.
	ErrInvalidEpsilon = errors.New("physics: epsilon must be positive")

	// ErrInvalidGravity indicates a NaN or infinite gravity component.
	ErrInvalidGravity = errors.New("physics: gravity must be finite")

	// ErrInvalidFieldStrength indicates a NaN or infinite field constant.
	ErrInvalidFieldStrength = errors.New("physics: field strength must be finite")

	// ErrDoesNotFit indicates a particle wider or taller than the world.
	ErrDoesNotFit = errors.New("physics: particle does not fit bounds")
)

// FitError identifies the particle rejected by NewWorld.
type FitError struct {
	Index  int
	Radius float64
}

func (e *FitError) Error() string {
	return fmt.Sprintf("%s (index %d, radius %g)", ErrDoesNotFit.Error(), e.Index, e.Radius)
}

func (e *FitError) Unwrap() error {
	return ErrDoesNotFit
}
