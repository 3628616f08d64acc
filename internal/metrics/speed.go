package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/verletsim/internal/physics"
)

// Speed summarises the particle speed distribution of the last frame,
// either its mean or its standard deviation.
type Speed struct {
	name   string
	spread bool
	speeds []float64
}

func NewMeanSpeed() *Speed {
	return &Speed{name: "mean_speed"}
}

func NewSpeedSpread() *Speed {
	return &Speed{name: "speed_stddev", spread: true}
}

func (s *Speed) Name() string { return s.name }

func (s *Speed) Observe(w *physics.World, dt float64) {
	s.speeds = s.speeds[:0]
	for _, p := range w.Particles() {
		s.speeds = append(s.speeds, p.Speed(dt))
	}
}

func (s *Speed) Value() float64 {
	if len(s.speeds) == 0 {
		return 0
	}
	if s.spread {
		if len(s.speeds) < 2 {
			return 0
		}
		return stat.StdDev(s.speeds, nil)
	}
	return stat.Mean(s.speeds, nil)
}

func (s *Speed) Reset() { s.speeds = s.speeds[:0] }
