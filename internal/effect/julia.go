package effect

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const juliaIter = 80

// Julia morphs a Julia set by orbiting c near the Mandelbrot boundary.
type Julia struct {
	time float64
	pal  []raster.RGB
}

func NewJulia() *Julia {
	pal := make([]raster.RGB, fractalPalette)
	for i := range pal {
		pal[i] = palette.HSV(float64(i)/fractalPalette*360+120, 0.9, 0.9)
	}
	return &Julia{pal: pal}
}

func (j *Julia) Update(dt float64, _, _ int, _ *region.Scene) { j.time += dt }

func (j *Julia) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	pix := buf.Bytes()
	cr := float32(0.355 + 0.3*math.Cos(j.time*0.15))
	ci := float32(0.355 + 0.3*math.Sin(j.time*0.2))
	scale := float32(3 / float64(min(w, h)))
	offX, offY := float32(w)*0.5, float32(h)*0.5
	shift := int(j.time * 25)

	i := 0
	for py := 0; py < h; py++ {
		zi := (float32(py) - offY) * scale
		for px := 0; px < w; px++ {
			zr := (float32(px) - offX) * scale
			p := pix[i : i+4]
			i += 4

			iter, mod2 := escape(zr, zi, cr, ci, juliaIter)
			if iter == juliaIter {
				writeFractal(p, raster.RGB{})
				continue
			}
			writeFractal(p, j.pal[smoothIndex(iter, mod2, shift)])
		}
	}
}

func (j *Julia) RegionColor() raster.RGB { return raster.RGB{} }
func (j *Julia) Name() string            { return "Julia Morph" }
