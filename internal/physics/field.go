package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

// ForceField repels particles from a point with an inverse-square falloff.
// A negative Strength attracts.
type ForceField struct {
	Strength float64
}

func NewForceField(p Params) ForceField {
	return ForceField{Strength: p.FieldStrength}
}

// Apply sets each particle's force to dir * Strength/|dir|², dir pointing
// from point to the particle. Any previous force is overwritten. A particle
// sitting exactly on point has no defined direction and is skipped. It
// returns the number of particles that received a force.
func (f ForceField) Apply(particles []*body.Particle, point r2.Vec) int {
	applied := 0
	for _, p := range particles {
		dir := r2.Sub(p.Position, point)
		d2 := r2.Norm2(dir)
		if d2 == 0 {
			continue
		}
		p.Force = r2.Scale(f.Strength/d2, dir)
		applied++
	}
	return applied
}
