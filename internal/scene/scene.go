// Package scene builds the initial particle layouts.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Spawn describes one particle of an initial layout.
type Spawn struct {
	Position r2.Vec
	Mass     float64
	Radius   float64
}

type Layout []Spawn

// Build constructs the particle collection in layout order.
func Build(layout Layout) ([]*body.Particle, error) {
	ps := make([]*body.Particle, 0, len(layout))
	for i, s := range layout {
		p, err := body.New(s.Position, s.Mass, s.Radius)
		if err != nil {
			return nil, fmt.Errorf("scene: spawn %d: %w", i, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

var registry = map[string]func() Layout{
	"default": Default,
	"pair":    Pair,
	"drop":    Drop,
	"pile":    Pile,
}

func Get(name string) (Layout, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScene, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
