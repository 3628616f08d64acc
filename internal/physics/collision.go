package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

// Resolve removes the overlap between a and b by moving each of them half
// the penetration depth along the line joining their centres. Mass is not
// taken into account and only positions change, so the correction shows up
// as velocity on the next Verlet step. It reports whether a correction was
// applied. a and b must be distinct.
func Resolve(a, b *body.Particle, eps float64) bool {
	d := r2.Sub(b.Position, a.Position)
	maxRadius := a.Radius() + b.Radius()

	if math.Abs(d.X) >= maxRadius || math.Abs(d.Y) >= maxRadius {
		return false
	}

	length := r2.Norm(d)
	if length >= maxRadius {
		return false
	}

	// Coincident centres: push b up and a down along y.
	if length == 0 {
		length = eps
		d = r2.Vec{X: 0, Y: eps}
	}

	n := r2.Scale(1/length, d)
	c := r2.Scale((maxRadius-length)*0.5, n)

	b.Position = r2.Add(b.Position, c)
	a.Position = r2.Sub(a.Position, c)
	return true
}

// Overlap returns the penetration depth of a and b, or 0 if they are apart.
func Overlap(a, b *body.Particle) float64 {
	pen := a.Radius() + b.Radius() - r2.Norm(r2.Sub(b.Position, a.Position))
	if pen < 0 {
		return 0
	}
	return pen
}
