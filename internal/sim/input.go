package sim

import "gonum.org/v1/gonum/spatial/r2"

// Idle never activates the field and never closes.
type Idle struct{}

func (Idle) Poll() Signal { return Signal{} }

// Script activates the field at Point for frames in [From, To).
// Frames are counted by Poll calls, starting at 0.
type Script struct {
	Point    r2.Vec
	From, To int

	frame int
}

func (s *Script) Poll() Signal {
	sig := Signal{Point: s.Point, Active: s.frame >= s.From && s.frame < s.To}
	s.frame++
	return sig
}

// InputFunc adapts a function to Input.
type InputFunc func() Signal

func (f InputFunc) Poll() Signal { return f() }

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Frame) error

func (f PresenterFunc) Present(fr Frame) error { return f(fr) }

// Discard drops every frame.
var Discard Presenter = PresenterFunc(func(Frame) error { return nil })
