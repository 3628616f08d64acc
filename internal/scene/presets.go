package scene

import "gonum.org/v1/gonum/spatial/r2"

const (
	GridSize    = 10
	GridSpacing = 14.0
)

// Default is the reference layout: a 10x10 grid whose mass and radius grow
// with the column, plus one small particle dropped from above.
func Default() Layout {
	layout := make(Layout, 0, GridSize*GridSize+1)
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			size := float64(x) + 1
			layout = append(layout, Spawn{
				Position: r2.Vec{X: float64(x) * GridSpacing, Y: float64(y) * GridSpacing},
				Mass:     size,
				Radius:   size,
			})
		}
	}
	return append(layout, Spawn{Position: r2.Vec{X: 315, Y: 20}, Mass: 1, Radius: 5})
}

// Pair is two equal bodies overlapping by 4 units on the x axis.
func Pair() Layout {
	return Layout{
		{Position: r2.Vec{X: 397, Y: 300}, Mass: 1, Radius: 5},
		{Position: r2.Vec{X: 403, Y: 300}, Mass: 1, Radius: 5},
	}
}

func Drop() Layout {
	return Layout{{Position: r2.Vec{X: 400, Y: 300}, Mass: 1, Radius: 10}}
}

// Pile stacks bodies on one point so every pair starts coincident.
func Pile() Layout {
	layout := make(Layout, 20)
	for i := range layout {
		layout[i] = Spawn{Position: r2.Vec{X: 400, Y: 300}, Mass: 1, Radius: 6}
	}
	return layout
}
