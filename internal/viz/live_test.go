package viz

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/sim"
)

func pairBuilder() (*sim.Engine, error) {
	ps, err := scene.Build(scene.Pair())
	if err != nil {
		return nil, err
	}
	params := physics.DefaultParams()
	w, err := physics.NewWorld(params, ps)
	if err != nil {
		return nil, err
	}
	return sim.New(w, physics.NewForceField(params), sim.DefaultConfig())
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	opts := DefaultOptions()
	opts.FPS = 250
	m, err := NewModel(pairBuilder, opts)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestMousePressActivatesField(t *testing.T) {
	m := newTestModel(t)

	m = update(m, tea.MouseMsg{X: canvasPadX, Y: canvasPadY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.pressed {
		t.Fatal("expected field active after press")
	}
	if math.Abs(m.cursor.X-5) > 1e-9 || math.Abs(m.cursor.Y-10) > 1e-9 {
		t.Errorf("expected cursor at (5, 10), got %v", m.cursor)
	}

	m = update(m, tea.MouseMsg{X: canvasPadX + 40, Y: canvasPadY + 15, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if math.Abs(m.cursor.X-405) > 1e-9 || math.Abs(m.cursor.Y-310) > 1e-9 {
		t.Errorf("expected cursor to follow drag, got %v", m.cursor)
	}

	m = update(m, tea.MouseMsg{X: canvasPadX, Y: canvasPadY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.pressed {
		t.Error("expected field off after release")
	}
}

func TestMousePressOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.pressed {
		t.Error("expected press in padding to be ignored")
	}
}

func TestTickAdvancesEngine(t *testing.T) {
	m := newTestModel(t)

	m = update(m, TickMsg{})
	if got := m.engine.FrameIndex(); got != 4 {
		t.Errorf("expected 4 frames after one tick, got %d", got)
	}
	if len(m.energy) != 1 || len(m.contacts) != 1 {
		t.Errorf("expected one history entry, got %d/%d", len(m.energy), len(m.contacts))
	}
}

func TestTickPacingCarriesRemainder(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 60
	m, err := NewModel(pairBuilder, opts)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	m = update(m, TickMsg{})
	if got := m.engine.FrameIndex(); got != 16 {
		t.Errorf("expected 16 frames after one tick, got %d", got)
	}
	for i := 1; i < 60; i++ {
		m = update(m, TickMsg{})
	}
	// one second of redraws is one second of simulated time
	if got := m.engine.FrameIndex(); got != 1000 {
		t.Errorf("expected 1000 frames after 60 ticks, got %d", got)
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m := newTestModel(t)

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	if m.running {
		t.Fatal("expected paused")
	}
	m = update(m, TickMsg{})
	if got := m.engine.FrameIndex(); got != 0 {
		t.Errorf("expected no frames while paused, got %d", got)
	}
}

func TestResetRebuildsEngine(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if got := m.engine.FrameIndex(); got != 0 {
		t.Errorf("expected fresh engine, got frame %d", got)
	}
	if len(m.energy) != 0 {
		t.Errorf("expected history cleared, got %d entries", len(m.energy))
	}
}

func TestThemeCycles(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name
	for range Themes {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	}
	if m.theme.Name != first {
		t.Errorf("expected to cycle back to %s, got %s", first, m.theme.Name)
	}
}

func TestDrawMarksCursorWhilePressed(t *testing.T) {
	m := newTestModel(t)
	m.running = false

	// lower left corner, away from the pair
	m = update(m, tea.MouseMsg{X: canvasPadX + 10, Y: canvasPadY + 25, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, TickMsg{})
	row, col := 25, 10
	if m.canvas.Grid[row][col] == blank {
		t.Error("expected cursor cross drawn under the pointer")
	}
	if m.canvas.Tint[row][col] != "" {
		t.Errorf("expected untinted cursor cell, got %q", m.canvas.Tint[row][col])
	}

	m = update(m, tea.MouseMsg{X: canvasPadX + 10, Y: canvasPadY + 25, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = update(m, TickMsg{})
	if m.canvas.Grid[row][col] != blank {
		t.Error("expected cursor cross cleared after release")
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	if m.View() == "" {
		t.Error("expected non-empty view")
	}
}
