package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
)

// Sprite is one circle to draw.
type Sprite struct {
	Center r2.Vec
	Radius float64
	Color  color.RGBA
}

// Sprites builds a sprite per particle, in collection order.
func Sprites(ps []*body.Particle, width, height float64) []Sprite {
	out := make([]Sprite, len(ps))
	for i, p := range ps {
		out[i] = Sprite{
			Center: p.Position,
			Radius: p.Radius(),
			Color:  Color(p.Position.X, p.Position.Y, width, height),
		}
	}
	return out
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [...]uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}
