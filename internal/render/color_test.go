package render

import (
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

func TestColor(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want color.RGBA
	}{
		{"origin", 0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"far corner", 800, 600, color.RGBA{R: 0, G: 0, B: 255, A: 255}},
		{"centre", 400, 300, color.RGBA{R: 127, G: 127, B: 255, A: 255}},
		{"rounds to nearest", 200, 450, color.RGBA{R: 191, G: 64, B: 255, A: 255}},
		{"rounds down", 1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"outside clamps", -50, 900, color.RGBA{R: 255, G: 0, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Color(tt.x, tt.y, 800, 600)
			if got != tt.want {
				t.Errorf("Color(%f,%f) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestColor_Deterministic(t *testing.T) {
	a := Color(123.456, 78.9, 800, 600)
	b := Color(123.456, 78.9, 800, 600)
	if a != b {
		t.Errorf("expected identical colours, got %v and %v", a, b)
	}
}

func TestSprites(t *testing.T) {
	ps := []*body.Particle{
		body.MustNew(r2.Vec{X: 10, Y: 20}, 1, 3),
		body.MustNew(r2.Vec{X: 790, Y: 590}, 2, 7),
	}
	sprites := Sprites(ps, 800, 600)
	if len(sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(sprites))
	}
	if sprites[1].Radius != 7 || sprites[1].Center != ps[1].Position {
		t.Errorf("unexpected sprite: %+v", sprites[1])
	}
	if sprites[0].Color != Color(10, 20, 800, 600) {
		t.Errorf("sprite colour does not match Color()")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 0xff, G: 0x0a, B: 0x80}); got != "#ff0a80" {
		t.Errorf("expected #ff0a80, got %s", got)
	}
}
