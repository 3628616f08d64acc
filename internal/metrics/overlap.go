package metrics

import (
	"github.com/san-kum/verletsim/internal/physics"
)

// Overlap tracks the deepest residual penetration seen after any frame.
type Overlap struct {
	name string
	max  float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "max_overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(w *physics.World, _ float64) {
	if pen := w.MaxOverlap(); pen > o.max {
		o.max = pen
	}
}

func (o *Overlap) Value() float64 { return o.max }
func (o *Overlap) Reset()         { o.max = 0 }
