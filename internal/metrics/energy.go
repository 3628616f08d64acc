package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
	"github.com/san-kum/verletsim/internal/physics"
)

// KineticEnergy returns Σ ½ m |v|² with v derived from the last step.
func KineticEnergy(ps []*body.Particle, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	total := 0.0
	for _, p := range ps {
		v := r2.Scale(1/dt, p.Velocity())
		total += 0.5 * p.Mass() * r2.Norm2(v)
	}
	return total
}

// Energy reports the mean kinetic energy over the observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "kinetic_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *physics.World, dt float64) {
	e.totalEnergy += KineticEnergy(w.Particles(), dt)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// FinalEnergy reports the kinetic energy of the last observed frame.
type FinalEnergy struct {
	name   string
	energy float64
}

func NewFinalEnergy() *FinalEnergy {
	return &FinalEnergy{name: "final_kinetic_energy"}
}

func (e *FinalEnergy) Name() string { return e.name }

func (e *FinalEnergy) Observe(w *physics.World, dt float64) {
	e.energy = KineticEnergy(w.Particles(), dt)
}

func (e *FinalEnergy) Value() float64 { return e.energy }
func (e *FinalEnergy) Reset()         { e.energy = 0 }
