package scene

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

func TestDefault(t *testing.T) {
	layout := Default()
	if len(layout) != 101 {
		t.Fatalf("expected 101 spawns, got %d", len(layout))
	}

	// column-major: x outer, y inner
	s := layout[3*GridSize+7]
	if s.Position != (r2.Vec{X: 42, Y: 98}) {
		t.Errorf("expected (42,98), got %v", s.Position)
	}
	if s.Mass != 4 || s.Radius != 4 {
		t.Errorf("expected mass=radius=4, got %f %f", s.Mass, s.Radius)
	}

	last := layout[len(layout)-1]
	if last.Position != (r2.Vec{X: 315, Y: 20}) || last.Mass != 1 || last.Radius != 5 {
		t.Errorf("unexpected extra spawn: %+v", last)
	}
}

func TestBuild(t *testing.T) {
	ps, err := Build(Default())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(ps) != 101 {
		t.Fatalf("expected 101 particles, got %d", len(ps))
	}
	for i, p := range ps {
		if p.Position != p.PreviousPosition {
			t.Errorf("particle %d not at rest", i)
		}
	}
}

func TestBuild_Invalid(t *testing.T) {
	_, err := Build(Layout{{Mass: 1, Radius: 1}, {Mass: -1, Radius: 1}})
	if !errors.Is(err, body.ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}
}

func TestGet(t *testing.T) {
	for _, name := range Names() {
		layout, err := Get(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if len(layout) == 0 {
			t.Errorf("%s: empty layout", name)
		}
	}

	if _, err := Get("nonexistent"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

func TestPairOverlap(t *testing.T) {
	p := Pair()
	gap := p[1].Position.X - p[0].Position.X
	if gap != 6 {
		t.Errorf("expected centres 6 apart, got %f", gap)
	}
}
