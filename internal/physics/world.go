package physics

import (
	"github.com/san-kum/verletsim/internal/body"
)

// StepStats summarises one call to Advance.
type StepStats struct {
	// Contacts counts the ordered pairs that received a correction.
	Contacts int
}

// World owns the particle collection and steps it.
type World struct {
	params     Params
	particles  []*body.Particle
	integrator *Integrator
}

// NewWorld validates params and checks that every particle fits the bounds.
// The slice is retained, not copied.
func NewWorld(params Params, particles []*body.Particle) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for i, p := range particles {
		if 2*p.Radius() > params.Width || 2*p.Radius() > params.Height {
			return nil, &FitError{Index: i, Radius: p.Radius()}
		}
	}
	return &World{
		params:     params,
		particles:  particles,
		integrator: NewIntegrator(params),
	}, nil
}

func (w *World) Params() Params              { return w.params }
func (w *World) Particles() []*body.Particle { return w.particles }
func (w *World) Len() int                    { return len(w.particles) }

// Advance runs the collision pass to completion, then the integration pass.
func (w *World) Advance(dt float64) StepStats {
	contacts := w.CollisionPass()
	w.IntegrationPass(dt)
	return StepStats{Contacts: contacts}
}

// CollisionPass visits every ordered pair (i, j), i != j, in ascending
// index order. Each unordered pair is therefore resolved twice per pass;
// Resolve is symmetric so the second visit only relaxes what the
// intervening pairs disturbed.
func (w *World) CollisionPass() int {
	contacts := 0
	n := len(w.particles)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if Resolve(w.particles[i], w.particles[j], w.params.Epsilon) {
				contacts++
			}
		}
	}
	return contacts
}

func (w *World) IntegrationPass(dt float64) {
	for _, p := range w.particles {
		w.integrator.Step(p, dt)
	}
}

// MaxOverlap returns the deepest penetration among all unordered pairs.
func (w *World) MaxOverlap() float64 {
	maxPen := 0.0
	for i := 0; i < len(w.particles); i++ {
		for j := i + 1; j < len(w.particles); j++ {
			if pen := Overlap(w.particles[i], w.particles[j]); pen > maxPen {
				maxPen = pen
			}
		}
	}
	return maxPen
}

// InBounds reports whether p satisfies the boundary invariant.
func (w *World) InBounds(p *body.Particle) bool {
	r := p.Radius()
	return p.Position.X >= r && p.Position.X <= w.params.Width-r &&
		p.Position.Y >= r && p.Position.Y <= w.params.Height-r
}
