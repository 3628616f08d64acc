// Package export renders particle snapshots as standalone images.
package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/render"
)

// SnapshotToSVG draws sprites on a black world-sized canvas. Each trail,
// if any, is drawn under the discs as a polyline in the colour of the
// sprite with the same index.
func SnapshotToSVG(sprites []render.Sprite, width, height float64, trails [][]r2.Vec) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	for i, trail := range trails {
		if len(trail) < 2 || i >= len(sprites) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1" d="M`,
			render.Hex(sprites[i].Color)))
		for j, p := range trail {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, s := range sprites {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, s.Center.X, s.Center.Y, s.Radius, render.Hex(s.Color)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
