package viz

import (
	"image"
	"image/color/palette"
	"image/gif"
	"os"

	"github.com/san-kum/verletsim/internal/render"
)

// Recorder collects frames for an animated GIF.
type Recorder struct {
	width, height int
	frames        []*image.Paletted
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterises sprites in a world of the given size into one frame.
func (r *Recorder) Capture(sprites []render.Sprite, worldW, worldH float64) {
	img := image.NewPaletted(image.Rect(0, 0, r.width, r.height), palette.Plan9)
	sx := float64(r.width) / worldW
	sy := float64(r.height) / worldH

	for _, s := range sprites {
		cx, cy := s.Center.X*sx, s.Center.Y*sy
		rad := max(s.Radius*sx, 0.5)
		x0, x1 := int(cx-rad), int(cx+rad)
		y0, y1 := int(cy-rad), int(cy+rad)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
				if dx*dx+dy*dy <= rad*rad {
					img.Set(x, y, s.Color)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gif.EncodeAll(f, &anim)
}
