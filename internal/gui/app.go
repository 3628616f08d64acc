package gui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColCursor  = rl.NewColor(255, 80, 80, 160)
)

// App owns the raylib window. It is both the engine's input (mouse and
// close button) and its presenter.
type App struct {
	Title   string
	Width   int
	Height  int
	ShowHUD bool

	pressed bool
	cursor  r2.Vec
}

func NewApp(title string, width, height float64) *App {
	return &App{
		Title:   title,
		Width:   int(width),
		Height:  int(height),
		ShowHUD: true,
	}
}

// initWindow opens a window the size of the world. The frame rate is left
// unlimited since the engine paces itself.
func (a *App) initWindow() {
	rl.InitWindow(int32(a.Width), int32(a.Height), a.Title)
	rl.SetTargetFPS(0)
	rl.SetExitKey(rl.KeyEscape)
}

// Poll reads the close flag and the left mouse button. Input state is
// refreshed by raylib at the end of each drawn frame.
func (a *App) Poll() sim.Signal {
	if rl.WindowShouldClose() {
		return sim.Signal{Close: true}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	a.pressed = rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if !a.pressed {
		return sim.Signal{}
	}
	mp := rl.GetMousePosition()
	a.cursor = r2.Vec{X: float64(mp.X), Y: float64(mp.Y)}
	return sim.Signal{Active: true, Point: a.cursor}
}

func (a *App) Present(f sim.Frame) error {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	drawSprites(f.Sprites)
	if a.pressed {
		drawCursor(a.cursor)
	}
	if a.ShowHUD {
		drawHUD(f, len(f.Sprites))
	}
	rl.EndDrawing()
	return nil
}

// Run opens the window and drives engine in real time until the window is
// closed or ctx is cancelled.
func Run(ctx context.Context, a *App, engine *sim.Engine) error {
	a.initWindow()
	defer rl.CloseWindow()

	return engine.Run(ctx, a, a)
}
