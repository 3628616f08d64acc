package metrics

import (
	"github.com/san-kum/verletsim/internal/physics"
)

// Containment is the fraction of frames in which every particle satisfied
// the boundary invariant. Anything below 1 is a bug.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(w *physics.World, _ float64) {
	c.samples++
	for _, p := range w.Particles() {
		if !w.InBounds(p) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
