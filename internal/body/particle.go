package body

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type Particle struct {
	Position         r2.Vec
	PreviousPosition r2.Vec
	// Force is consumed and zeroed by the next integration step.
	Force r2.Vec

	mass   float64
	radius float64
}

// New creates a particle at rest at pos.
func New(pos r2.Vec, mass, radius float64) (*Particle, error) {
	if !positive(mass) {
		return nil, &ParamError{Field: "mass", Value: mass, Wrapped: ErrInvalidMass}
	}
	if !positive(radius) {
		return nil, &ParamError{Field: "radius", Value: radius, Wrapped: ErrInvalidRadius}
	}
	return &Particle{
		Position:         pos,
		PreviousPosition: pos,
		mass:             mass,
		radius:           radius,
	}, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(pos r2.Vec, mass, radius float64) *Particle {
	p, err := New(pos, mass, radius)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Particle) Mass() float64   { return p.mass }
func (p *Particle) Radius() float64 { return p.radius }

// Velocity returns the displacement over the last step.
func (p *Particle) Velocity() r2.Vec {
	return r2.Sub(p.Position, p.PreviousPosition)
}

// Speed returns the velocity magnitude in world units per second.
func (p *Particle) Speed(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return r2.Norm(p.Velocity()) / dt
}

// IsValid reports whether the particle's positions are finite.
func (p *Particle) IsValid() bool {
	for _, v := range [...]float64{p.Position.X, p.Position.Y, p.PreviousPosition.X, p.PreviousPosition.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
