package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
	"github.com/san-kum/verletsim/internal/physics"
)

func moving(x, y, vx, vy, mass float64) *body.Particle {
	p := body.MustNew(r2.Vec{X: x, Y: y}, mass, 2)
	p.PreviousPosition = r2.Vec{X: x - vx, Y: y - vy}
	return p
}

func newWorld(t *testing.T, ps ...*body.Particle) *physics.World {
	t.Helper()
	w, err := physics.NewWorld(physics.DefaultParams(), ps)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

func TestKineticEnergy(t *testing.T) {
	ps := []*body.Particle{
		moving(100, 100, 3, 4, 2), // |v| = 5/dt
		moving(200, 200, 0, 0, 9),
	}

	got := KineticEnergy(ps, 0.5)
	expected := 0.5 * 2 * 100.0
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, got)
	}

	if KineticEnergy(ps, 0) != 0 {
		t.Error("expected zero energy for non-positive dt")
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy()
	w := newWorld(t, moving(100, 100, 1, 0, 1))

	m.Observe(w, 1)
	m.Observe(w, 1)
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected mean 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestFinalEnergy(t *testing.T) {
	m := NewFinalEnergy()
	m.Observe(newWorld(t, moving(100, 100, 2, 0, 1)), 1)
	m.Observe(newWorld(t, moving(100, 100, 1, 0, 1)), 1)
	if m.Value() != 0.5 {
		t.Errorf("expected last frame energy 0.5, got %f", m.Value())
	}
}

func TestContainment(t *testing.T) {
	m := NewContainment()
	if m.Value() != 1 {
		t.Error("expected 1 with no samples")
	}

	inside := newWorld(t, moving(100, 100, 0, 0, 1))
	m.Observe(inside, 0.001)

	outside := newWorld(t, moving(-10, 100, 0, 0, 1))
	m.Observe(outside, 0.001)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestOverlap(t *testing.T) {
	m := NewOverlap()
	m.Observe(newWorld(t, moving(100, 100, 0, 0, 1), moving(103, 100, 0, 0, 1)), 0.001)
	m.Observe(newWorld(t, moving(100, 100, 0, 0, 1), moving(110, 100, 0, 0, 1)), 0.001)

	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected max overlap 1, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSpeed(t *testing.T) {
	w := newWorld(t,
		moving(100, 100, 1, 0, 1),
		moving(200, 100, 3, 0, 1),
	)

	mean := NewMeanSpeed()
	mean.Observe(w, 1)
	if math.Abs(mean.Value()-2) > 1e-12 {
		t.Errorf("expected mean speed 2, got %f", mean.Value())
	}

	spread := NewSpeedSpread()
	spread.Observe(w, 1)
	if math.Abs(spread.Value()-math.Sqrt2) > 1e-12 {
		t.Errorf("expected stddev sqrt(2), got %f", spread.Value())
	}

	spread.Reset()
	if spread.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
