package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

type Integrator struct {
	gravity       r2.Vec
	width, height float64
}

func NewIntegrator(p Params) *Integrator {
	return &Integrator{
		gravity: p.Gravity,
		width:   p.Width,
		height:  p.Height,
	}
}

// Step advances p by dt:
//
//	x' = 2x - x_prev + (g + F/m) dt²
//
// then clamps x' into the world inset by the radius and zeroes the force.
// The clamp leaves PreviousPosition alone, which kills the velocity
// component into a wall on the following step.
func (in *Integrator) Step(p *body.Particle, dt float64) {
	acc := r2.Add(in.gravity, r2.Scale(1/p.Mass(), p.Force))

	next := r2.Add(
		r2.Sub(r2.Scale(2, p.Position), p.PreviousPosition),
		r2.Scale(dt*dt, acc),
	)
	p.PreviousPosition = p.Position

	r := p.Radius()
	p.Position = r2.Vec{
		X: clamp(next.X, r, in.width-r),
		Y: clamp(next.Y, r, in.height-r),
	}

	p.Force = r2.Vec{}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
