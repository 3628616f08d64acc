package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/render"
	"github.com/san-kum/verletsim/internal/sim"
)

const historyCapacity = 600

type TickMsg time.Time

// Builder creates a fresh engine. It is called once at start and on reset.
type Builder func() (*sim.Engine, error)

type Options struct {
	Title string
	// FPS is the redraw rate. Each redraw runs TickRate/FPS engine frames
	// on average, the remainder carried to the next redraw.
	FPS int
	// Width and Height are the canvas size in terminal cells.
	Width, Height int
	Theme         string
	// GIFPath is where a recording is written when it stops.
	GIFPath string
}

func DefaultOptions() Options {
	return Options{
		Title:   "verletsim",
		FPS:     60,
		Width:   80,
		Height:  30,
		Theme:   ThemeCyberpunk.Name,
		GIFPath: "verletsim.gif",
	}
}

// Model is the bubbletea model for the terminal view. Holding the left
// mouse button over the canvas activates the force field at the cursor.
type Model struct {
	build  Builder
	engine *sim.Engine
	opts   Options

	canvas *Canvas
	theme  Theme
	styles styles

	running  bool
	pressed  bool
	cursor   r2.Vec
	carry    int
	energy   []float64
	contacts []float64
	recorder *Recorder
	status   string
	err      error
}

func NewModel(build Builder, opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultOptions().Width, DefaultOptions().Height
	}

	engine, err := build()
	if err != nil {
		return Model{}, err
	}

	theme := GetTheme(opts.Theme)
	return Model{
		build:    build,
		engine:   engine,
		opts:     opts,
		canvas:   NewCanvas(opts.Width, opts.Height),
		theme:    theme,
		styles:   newStyles(theme),
		running:  true,
		energy:   make([]float64, 0, historyCapacity),
		contacts: make([]float64, 0, historyCapacity),
	}, nil
}

// Err is the step error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "t":
			m.theme = nextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "g":
			if m.recorder != nil {
				m.stopRecording()
			} else {
				m.recorder = NewRecorder(m.opts.Width*4, m.opts.Height*8)
				m.status = "recording"
			}
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running {
			if err := m.advance(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	p, inside := m.toWorld(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			m.pressed = true
			m.cursor = p
		}
	case tea.MouseActionMotion:
		if m.pressed {
			m.cursor = p
		}
	case tea.MouseActionRelease:
		m.pressed = false
	}
}

// toWorld maps a terminal cell to the world point under the centre of
// that cell. The point is clamped to the world when the cell lies outside
// the canvas.
func (m *Model) toWorld(x, y int) (r2.Vec, bool) {
	col := x - canvasPadX
	row := y - canvasPadY
	inside := col >= 0 && row >= 0 && col < m.canvas.Width && row < m.canvas.Height

	col = max(0, min(col, m.canvas.Width-1))
	row = max(0, min(row, m.canvas.Height-1))

	params := m.engine.World().Params()
	return r2.Vec{
		X: (float64(col) + 0.5) / float64(m.canvas.Width) * params.Width,
		Y: (float64(row) + 0.5) / float64(m.canvas.Height) * params.Height,
	}, inside
}

func (m *Model) advance() error {
	sig := sim.Signal{Active: m.pressed, Point: m.cursor}
	contacts := 0
	steps := m.pace()
	for i := 0; i < steps; i++ {
		stats, err := m.engine.Step(sig)
		if err != nil {
			return err
		}
		contacts = stats.Contacts
	}

	dt := m.engine.Config().Dt()
	m.energy = pushHistory(m.energy, metrics.KineticEnergy(m.engine.World().Particles(), dt))
	m.contacts = pushHistory(m.contacts, float64(contacts))
	return nil
}

// pace returns the engine frames due this redraw so that FPS redraws
// cover exactly TickRate frames.
func (m *Model) pace() int {
	m.carry += m.engine.Config().TickRate
	steps := m.carry / m.opts.FPS
	m.carry %= m.opts.FPS
	return steps
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() error {
	engine, err := m.build()
	if err != nil {
		return err
	}
	m.engine = engine
	m.pressed = false
	m.carry = 0
	m.energy = m.energy[:0]
	m.contacts = m.contacts[:0]
	return nil
}

func (m *Model) stopRecording() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.status = "record failed: " + err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.GIFPath)
	}
	m.recorder = nil
}

// draw projects every particle onto the canvas as a filled disc.
func (m *Model) draw() {
	m.canvas.Clear()

	frame := m.engine.Frame()
	params := m.engine.World().Params()
	sx := float64(m.canvas.SubWidth()) / params.Width
	sy := float64(m.canvas.SubHeight()) / params.Height

	for _, s := range frame.Sprites {
		cx := int(s.Center.X * sx)
		cy := int(s.Center.Y * sy)
		r := int(math.Round(s.Radius * sx))
		m.canvas.Disc(cx, cy, r, render.Hex(s.Color))
	}

	if m.pressed {
		cx, cy := int(m.cursor.X*sx), int(m.cursor.Y*sy)
		m.canvas.DrawLine(cx-2, cy, cx+2, cy)
		m.canvas.DrawLine(cx, cy-2, cx, cy+2)
	}

	if m.recorder != nil {
		m.recorder.Capture(frame.Sprites, params.Width, params.Height)
	}
}

func (m Model) View() string {
	st := m.styles
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.opts.Title)) + "\n")

	switch {
	case !m.running:
		s.WriteString(st.paused.Render("PAUSED"))
	case m.pressed:
		s.WriteString(st.active.Render("FIELD ON"))
	default:
		s.WriteString(st.running.Render("RUNNING"))
	}
	if m.recorder != nil {
		s.WriteString(st.active.Render("  ● REC"))
	}
	s.WriteString("\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.Sparkline(m.contacts, 30) + "\n\n")

	world := m.engine.World()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.3fs", m.engine.Time()))
	row("Frame", fmt.Sprintf("%d", m.engine.FrameIndex()))
	row("Particles", fmt.Sprintf("%d", world.Len()))
	row("Overlap", fmt.Sprintf("%.4f", world.MaxOverlap()))
	if len(m.contacts) > 0 {
		row("Contacts", fmt.Sprintf("%.0f", m.contacts[len(m.contacts)-1]))
	}
	if m.pressed {
		row("Cursor", fmt.Sprintf("%.0f, %.0f", m.cursor.X, m.cursor.Y))
	}
	row("Theme", m.theme.Name)
	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}

	s.WriteString(st.help.Render("mouse: push  space: pause  r: reset\nt: theme  g: record  q: quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

// Run starts the terminal program and blocks until it quits.
func Run(build Builder, opts Options) error {
	m, err := NewModel(build, opts)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
