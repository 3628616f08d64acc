package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultWidth         = 800.0
	DefaultHeight        = 600.0
	DefaultGravity       = 9.8 * 10000
	DefaultEpsilon       = 1e-4
	DefaultFieldStrength = 1e8
)

// Params is the immutable physical configuration of a world.
type Params struct {
	Width, Height float64
	Gravity       r2.Vec
	// Epsilon is the separation substituted for coincident centres.
	Epsilon float64
	// FieldStrength is K in the repulsion force dir * K / |dir|².
	FieldStrength float64
}

func DefaultParams() Params {
	return Params{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Gravity:       r2.Vec{X: 0, Y: DefaultGravity},
		Epsilon:       DefaultEpsilon,
		FieldStrength: DefaultFieldStrength,
	}
}

func (p Params) Validate() error {
	if !finitePositive(p.Width) || !finitePositive(p.Height) {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidBounds, p.Width, p.Height)
	}
	if !finitePositive(p.Epsilon) {
		return fmt.Errorf("%w: got %g", ErrInvalidEpsilon, p.Epsilon)
	}
	if !finite(p.Gravity.X) || !finite(p.Gravity.Y) {
		return fmt.Errorf("%w: got (%g, %g)", ErrInvalidGravity, p.Gravity.X, p.Gravity.Y)
	}
	// negative strength attracts, so only the magnitude must be finite
	if !finite(p.FieldStrength) {
		return fmt.Errorf("%w: got %g", ErrInvalidFieldStrength, p.FieldStrength)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
