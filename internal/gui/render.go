package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/render"
	"github.com/san-kum/verletsim/internal/sim"
)

func drawSprites(sprites []render.Sprite) {
	for _, s := range sprites {
		pos := rl.NewVector2(float32(s.Center.X), float32(s.Center.Y))
		col := rl.NewColor(s.Color.R, s.Color.G, s.Color.B, s.Color.A)
		rl.DrawCircleV(pos, float32(s.Radius), col)
	}
}

func drawCursor(p r2.Vec) {
	rl.DrawCircleLines(int32(p.X), int32(p.Y), 12, ColCursor)
}

func drawHUD(f sim.Frame, n int) {
	rl.DrawText(fmt.Sprintf("t %.3fs  frame %d", f.Time, f.Index), 10, 10, 16, ColText)
	rl.DrawText(fmt.Sprintf("%d particles  %d fps", n, rl.GetFPS()), 10, 30, 16, ColText)
	rl.DrawText("hold mouse: push  h: hud  esc: quit", 10, 50, 14, ColTextDim)
}
