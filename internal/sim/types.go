package sim

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/render"
)

// Signal is the external input consumed once per frame.
type Signal struct {
	// Active turns the force field on at Point for this frame.
	Active bool
	Point  r2.Vec
	// Close ends the loop before the next frame starts.
	Close bool
}

type Input interface {
	Poll() Signal
}

// Frame is what a presenter receives after each step.
type Frame struct {
	Index   int
	Time    float64
	Sprites []render.Sprite
}

type Presenter interface {
	Present(f Frame) error
}

type Metric interface {
	Name() string
	Observe(w *physics.World, dt float64)
	Value() float64
	Reset()
}

type Config struct {
	TickRate      int
	SnapshotEvery int
	ValidateState bool
	// LogEvery emits a debug record every N frames; 0 disables it.
	LogEvery int
}

func DefaultConfig() Config {
	return Config{
		TickRate:      1000,
		SnapshotEvery: 100,
		ValidateState: true,
	}
}

// Dt is the fixed timestep in seconds.
func (c Config) Dt() float64 {
	return 1 / float64(c.TickRate)
}

// Period is the delay inserted after every real-time frame.
func (c Config) Period() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if c.SnapshotEvery < 0 {
		return fmt.Errorf("%w: snapshot interval must be >= 0, got %d", ErrInvalidConfig, c.SnapshotEvery)
	}
	return nil
}

// Sample is the per-frame telemetry recorded by Simulate.
type Sample struct {
	Frame         int
	Time          float64
	KineticEnergy float64
	MaxOverlap    float64
	Contacts      int
}

// ParticleState is a copy of one particle's physical state.
type ParticleState struct {
	Index  int
	X, Y   float64
	PrevX  float64
	PrevY  float64
	Mass   float64
	Radius float64
}

type Snapshot struct {
	Frame     int
	Time      float64
	Particles []ParticleState
}

type Result struct {
	Samples   []Sample
	Snapshots []Snapshot
	Metrics   map[string]float64
	Frames    int
}
