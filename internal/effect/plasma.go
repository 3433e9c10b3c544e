package effect

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

// Plasma sums four sine fields and maps the result through a hue palette.
type Plasma struct {
	time   float64
	pal    []raster.RGB
	sinLUT [256]float64
}

func NewPlasma() *Plasma {
	p := &Plasma{pal: palette.Rainbow(256)}
	for i := range p.sinLUT {
		p.sinLUT[i] = math.Sin(float64(i) * 2 * math.Pi / 256)
	}
	return p
}

// fastSin indexes the table at 40.74 entries per radian.
func (p *Plasma) fastSin(x float64) float64 {
	return p.sinLUT[int(x*40.74)&255]
}

func (p *Plasma) Update(dt float64, _, _ int, _ *region.Scene) { p.time += dt }

func (p *Plasma) Render(buf *raster.Buffer) {
	t := p.time
	for y := 0; y < buf.Height(); y++ {
		fy := float64(y)
		for x := 0; x < buf.Width(); x++ {
			fx := float64(x)
			v1 := p.fastSin(fx*0.02 + t)
			v2 := p.fastSin(fy*0.03 + t*0.5)
			v3 := p.fastSin((fx+fy)*0.02 + t*0.7)
			v4 := p.fastSin(math.Sqrt(fx*fx+fy*fy)*0.03 + t)

			v := (v1 + v2 + v3 + v4 + 4) / 8
			c := p.pal[min(int(v*255), 255)]
			buf.SetPixel(x, y, c.R, c.G, c.B)
		}
	}
}

func (p *Plasma) RegionColor() raster.RGB { return rgb(20, 5, 30) }
func (p *Plasma) Name() string            { return "Plasma" }
