package sim

import (
	"context"
	"fmt"
	"time"
)

// Run is the real-time loop. It returns nil when the input asks to close,
// ctx.Err() when ctx is cancelled, or the first step or presenter error.
func (e *Engine) Run(ctx context.Context, in Input, out Presenter) error {
	period := e.cfg.Period()
	timer := time.NewTimer(period)
	defer timer.Stop()

	e.logger.Info("loop started",
		"particles", e.world.Len(),
		"tick_rate", e.cfg.TickRate,
		"dt", e.dt,
	)
	defer func() {
		e.logger.Info("loop stopped", "frames", e.frame, "sim_time", e.Time())
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sig := in.Poll()
		if sig.Close {
			return nil
		}

		if _, err := e.Step(sig); err != nil {
			return err
		}

		if err := out.Present(e.Frame()); err != nil {
			return fmt.Errorf("present frame %d: %w", e.frame, err)
		}

		timer.Reset(period)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Simulate runs frames steps as fast as possible, recording a sample per
// frame and a snapshot every SnapshotEvery frames (plus the initial state).
// in may be nil for an idle run. On error or cancellation the partial
// result is returned along with the error.
func (e *Engine) Simulate(ctx context.Context, frames int, in Input) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, frames)
	}
	if in == nil {
		in = Idle{}
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Samples:   make([]Sample, 0, frames),
		Snapshots: make([]Snapshot, 0),
		Metrics:   make(map[string]float64),
	}

	every := e.cfg.SnapshotEvery
	if every > 0 {
		result.Snapshots = append(result.Snapshots, e.snapshot())
	}

	start := e.frame
	var runErr error
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		sig := in.Poll()
		if sig.Close {
			break
		}

		stats, err := e.Step(sig)
		if err != nil {
			runErr = err
			break
		}

		result.Samples = append(result.Samples, e.sample(stats))
		if every > 0 && e.frame%every == 0 {
			result.Snapshots = append(result.Snapshots, e.snapshot())
		}
	}

	result.Frames = e.frame - start
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}
