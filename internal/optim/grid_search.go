// Package optim searches configuration grids for the best run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var ErrNoTrials = errors.New("optim: no successful trials")

// Eval runs one configuration and returns its metrics.
type Eval func(ctx context.Context, params map[string]float64) (map[string]float64, error)

type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize makes Search prefer larger metric values.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point in order and returns all trials and
// the index of the best one. Failed trials are kept with their error.
func (g *GridSearch) Search(ctx context.Context, eval Eval, metricName string) ([]Trial, int, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, -1, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	trials := make([]Trial, 0, g.Size())
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), eval, metricName, &trials); err != nil {
		return trials, -1, err
	}

	best := -1
	bestVal := math.Inf(1)
	if g.maximize {
		bestVal = math.Inf(-1)
	}
	for i, t := range trials {
		if t.Err != nil {
			continue
		}
		if (!g.maximize && t.Value < bestVal) || (g.maximize && t.Value > bestVal) {
			bestVal = t.Value
			best = i
		}
	}
	if best < 0 {
		return trials, -1, ErrNoTrials
	}
	return trials, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval Eval,
	metricName string,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}

		trial := Trial{Params: params}
		metrics, err := eval(ctx, params)
		switch {
		case err != nil:
			trial.Err = err
		default:
			val, ok := metrics[metricName]
			if !ok {
				trial.Err = fmt.Errorf("optim: metric %q not reported", metricName)
			}
			trial.Value = val
		}
		*trials = append(*trials, trial)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, eval, metricName, trials); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}
