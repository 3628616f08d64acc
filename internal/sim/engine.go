package sim

import (
	"log/slog"

	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/render"
)

type Engine struct {
	world   *physics.World
	field   physics.ForceField
	cfg     Config
	dt      float64
	frame   int
	metrics []Metric
	logger  *slog.Logger
	// fieldHits counts particles that received a field force this frame.
	fieldHits int
}

func New(world *physics.World, field physics.ForceField, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		world:   world,
		field:   field,
		cfg:     cfg,
		dt:      cfg.Dt(),
		metrics: make([]Metric, 0),
		logger:  slog.Default(),
	}, nil
}

// DefaultMetrics returns fresh instances of the standard run metrics.
func DefaultMetrics() []Metric {
	return []Metric{
		metrics.NewEnergy(),
		metrics.NewFinalEnergy(),
		metrics.NewOverlap(),
		metrics.NewMeanSpeed(),
		metrics.NewSpeedSpread(),
		metrics.NewContainment(),
	}
}

func (e *Engine) AddMetric(m Metric)       { e.metrics = append(e.metrics, m) }
func (e *Engine) SetLogger(l *slog.Logger) { e.logger = l }
func (e *Engine) World() *physics.World    { return e.world }
func (e *Engine) Config() Config           { return e.cfg }
func (e *Engine) FrameIndex() int          { return e.frame }
func (e *Engine) Time() float64            { return float64(e.frame) * e.dt }

// Step runs one frame of physics for the given signal.
func (e *Engine) Step(sig Signal) (physics.StepStats, error) {
	e.fieldHits = 0
	if sig.Active {
		e.fieldHits = e.field.Apply(e.world.Particles(), sig.Point)
	}

	stats := e.world.Advance(e.dt)
	e.frame++

	for _, m := range e.metrics {
		m.Observe(e.world, e.dt)
	}

	if e.cfg.ValidateState {
		for i, p := range e.world.Particles() {
			if !p.IsValid() {
				return stats, &SimError{Frame: e.frame, Time: e.Time(), Particle: i, Wrapped: ErrInvalidState}
			}
		}
	}

	if e.cfg.LogEvery > 0 && e.frame%e.cfg.LogEvery == 0 {
		e.logger.Debug("frame",
			"frame", e.frame,
			"contacts", stats.Contacts,
			"field", e.fieldHits,
			"kinetic_energy", metrics.KineticEnergy(e.world.Particles(), e.dt),
		)
	}

	return stats, nil
}

// Frame builds the presentation view of the current state.
func (e *Engine) Frame() Frame {
	p := e.world.Params()
	return Frame{
		Index:   e.frame,
		Time:    e.Time(),
		Sprites: render.Sprites(e.world.Particles(), p.Width, p.Height),
	}
}

func (e *Engine) sample(stats physics.StepStats) Sample {
	return Sample{
		Frame:         e.frame,
		Time:          e.Time(),
		KineticEnergy: metrics.KineticEnergy(e.world.Particles(), e.dt),
		MaxOverlap:    e.world.MaxOverlap(),
		Contacts:      stats.Contacts,
	}
}

func (e *Engine) snapshot() Snapshot {
	ps := e.world.Particles()
	s := Snapshot{Frame: e.frame, Time: e.Time(), Particles: make([]ParticleState, len(ps))}
	for i, p := range ps {
		s.Particles[i] = ParticleState{
			Index:  i,
			X:      p.Position.X,
			Y:      p.Position.Y,
			PrevX:  p.PreviousPosition.X,
			PrevY:  p.PreviousPosition.Y,
			Mass:   p.Mass(),
			Radius: p.Radius(),
		}
	}
	return s
}
