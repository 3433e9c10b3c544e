package effect

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const mandelCycle = 20.0

// Mandelbrot ping-pongs a smooth zoom into Seahorse Valley. Coordinates are
// mapped in float64, the orbit itself runs in float32.
type Mandelbrot struct {
	time    float64
	pal     []raster.RGB
	zoom    float64
	cx, cy  float64
	maxIter int
}

func NewMandelbrot() *Mandelbrot {
	return &Mandelbrot{
		pal:     palette.Hues(fractalPalette, 0.85, 0.95),
		zoom:    1,
		cx:      -0.745,
		cy:      0.186,
		maxIter: 64,
	}
}

func (m *Mandelbrot) Update(dt float64, _, _ int, _ *region.Scene) {
	m.time += dt
	t := math.Mod(m.time, mandelCycle*2) / mandelCycle
	if t >= 1 {
		t = 2 - t
	}
	eased := t * t * (3 - 2*t)
	m.zoom = math.Exp(eased * 7.5)
	m.maxIter = 64 + min(int(math.Max(math.Log(m.zoom), 0)*8), 160)
}

func (m *Mandelbrot) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	pix := buf.Bytes()
	invZoom := 3 / (float64(min(w, h)) * m.zoom)
	offX, offY := float64(w)*0.5, float64(h)*0.5
	shift := int(m.time * 30)

	i := 0
	for py := 0; py < h; py++ {
		ci := float32((float64(py)-offY)*invZoom + m.cy)
		for px := 0; px < w; px++ {
			cr := float32((float64(px)-offX)*invZoom + m.cx)
			p := pix[i : i+4]
			i += 4

			// main cardioid and period-2 bulb
			q := (cr-0.25)*(cr-0.25) + ci*ci
			if q*(q+(cr-0.25)) <= 0.25*ci*ci || (cr+1)*(cr+1)+ci*ci <= 0.0625 {
				writeFractal(p, raster.RGB{})
				continue
			}

			iter, mod2 := escape(0, 0, cr, ci, m.maxIter)
			if iter == m.maxIter {
				writeFractal(p, raster.RGB{})
				continue
			}
			writeFractal(p, m.pal[smoothIndex(iter, mod2, shift)])
		}
	}
}

func (m *Mandelbrot) RegionColor() raster.RGB { return raster.RGB{} }
func (m *Mandelbrot) Name() string            { return "Mandelbrot Zoom" }
