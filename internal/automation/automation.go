// Package automation loads scripted field pushes for headless runs.
package automation

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/verletsim/internal/sim"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scene plus a timeline of field pushes.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Scene       string `yaml:"scene"`
	Preset      string `yaml:"preset"`
	Frames      int    `yaml:"frames"`
	Pushes      []Push `yaml:"pushes"`
}

// Push holds the field on at (X, Y) for frames in [From, To).
type Push struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	From int     `yaml:"from"`
	To   int     `yaml:"to"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Frames < 0 {
		return fmt.Errorf("%w: frames must be >= 0, got %d", ErrInvalidScenario, s.Frames)
	}
	for i, p := range s.Pushes {
		if p.From < 0 || p.To <= p.From {
			return fmt.Errorf("%w: push %d has empty range [%d, %d)", ErrInvalidScenario, i, p.From, p.To)
		}
	}
	return nil
}

// Input returns a fresh timeline for one run of the scenario.
func (s *Scenario) Input() *Timeline {
	return &Timeline{pushes: s.Pushes}
}

// Timeline is a sim.Input that replays pushes by frame count. When pushes
// overlap, the first one listed wins.
type Timeline struct {
	pushes []Push
	frame  int
}

func (t *Timeline) Poll() sim.Signal {
	defer func() { t.frame++ }()
	for _, p := range t.pushes {
		if t.frame >= p.From && t.frame < p.To {
			return sim.Signal{Active: true, Point: r2.Vec{X: p.X, Y: p.Y}}
		}
	}
	return sim.Signal{}
}
