// Package render maps particle state to what a presenter draws.
package render

import (
	"image/color"
	"math"
)

// Color maps a world position to a colour: red fades along x, green fades
// along y, blue is constant. The result depends only on the inputs.
func Color(x, y, width, height float64) color.RGBA {
	return color.RGBA{
		R: 255 - channel(x/width),
		G: 255 - channel(y/height),
		B: 255,
		A: 255,
	}
}

func channel(f float64) uint8 {
	v := math.Round(f * 255)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
