package effect

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	copperBars   = 8
	copperHeight = 40.0 // at 480 rows
	copperAlpha  = 180
)

type copperBar struct {
	phase, speed, hue, amplitude float64
}

// CopperBars draws Amiga style raster bars swinging over each other.
type CopperBars struct {
	time float64
	bars []copperBar
}

func NewCopperBars() *CopperBars {
	bars := make([]copperBar, copperBars)
	for i := range bars {
		t := float64(i) / copperBars
		bars[i] = copperBar{
			phase:     t * 2 * math.Pi,
			speed:     1 + t*0.5,
			hue:       t * 360,
			amplitude: 0.35 + t*0.05,
		}
	}
	return &CopperBars{bars: bars}
}

func (c *CopperBars) Update(dt float64, _, _ int, _ *region.Scene) { c.time += dt }

// drawBar shades one bar brightest at its centre line.
func drawBar(buf *raster.Buffer, cy int, hue float64, height int) {
	half := max(height/2, 1)
	w := buf.Width()
	for dy := -half; dy <= half; dy++ {
		edge := math.Abs(float64(dy)) / float64(half)
		col := palette.Scale(palette.HSV(hue, 0.7+edge*0.3, 1-edge*0.6), copperAlpha/255.0)
		buf.HLineBlend(0, w-1, cy+dy, col.R, col.G, col.B, copperAlpha)
	}
}

func (c *CopperBars) Render(buf *raster.Buffer) {
	h := float64(buf.Height())
	height := int(math.Max(math.Round(copperHeight*h/480), 4))
	buf.Clear(16, 8, 32)
	for _, b := range c.bars {
		wave := math.Sin(c.time*b.speed + b.phase)
		drawBar(buf, int(h*0.5+wave*h*b.amplitude), math.Mod(b.hue+c.time*30, 360), height)
	}
}

func (c *CopperBars) RegionColor() raster.RGB { return rgb(16, 8, 32) }
func (c *CopperBars) Name() string            { return "Copper Bars" }
