package effect

import (
	"math"

	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/text"
)

// SMPTE bars at 75% intensity.
var (
	barWhite   = rgb(191, 191, 191)
	barYellow  = rgb(191, 191, 0)
	barCyan    = rgb(0, 191, 191)
	barGreen   = rgb(0, 191, 0)
	barMagenta = rgb(191, 0, 191)
	barRed     = rgb(191, 0, 0)
	barBlue    = rgb(0, 0, 191)
	barBlack   = rgb(0, 0, 0)
	barNegI    = rgb(0, 68, 130)
	barPosQ    = rgb(67, 0, 130)
	barPlus4   = rgb(10, 10, 10)
)

const (
	scanDark   = 3
	scanPeriod = 6
)

// TestPattern is the SMPTE color bar sentinel, with a sine marquee and
// drifting CRT scanlines.
type TestPattern struct {
	time     float64
	scroller *text.SineScroller
	scanOff  float64
	glitch   float64
}

func NewTestPattern() *TestPattern {
	s := text.NewSineScroller("2389 RESEARCH     ")
	s.Speed(80).Scale(5).Color(255, 255, 255)
	s.Amplitude(20).Frequency(3)
	return &TestPattern{scroller: s}
}

func (p *TestPattern) Update(dt float64, w, h int, _ *region.Scene) {
	p.time += dt
	p.scroller.SetScreenWidth(w)
	p.scroller.Update(dt)

	wave := math.Sin(p.time*0.3)*40 + math.Sin(p.time*0.7)*20 + math.Sin(p.time*1.9)*8
	p.scanOff = wave + float64(h)/2

	// occasional jump forward
	p.glitch += dt
	if p.glitch > 2.5+math.Abs(math.Sin(p.time*1.7))*4 {
		p.glitch = 0
		p.scanOff += 20 + math.Abs(math.Sin(p.time*3.3))*30
	}
}

func fillBars(buf *raster.Buffer, y, h, barW int, colors []raster.RGB) {
	for i, c := range colors {
		x := i * barW
		w := barW
		if i == len(colors)-1 {
			w = buf.Width() - x
		}
		buf.FillRect(x, y, w, h, c.R, c.G, c.B)
	}
}

func (p *TestPattern) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	mainH := h * 2 / 3
	midH := h / 12
	bottomY := mainH + midH
	bottomH := h - bottomY
	barW := w / 7

	fillBars(buf, 0, mainH, barW, []raster.RGB{barWhite, barYellow, barCyan, barGreen, barMagenta, barRed, barBlue})
	fillBars(buf, mainH, midH, barW, []raster.RGB{barBlue, barBlack, barMagenta, barBlack, barCyan, barBlack, barWhite})

	// pluge: -I, white, +Q, black, then superblack | black | +4%
	buf.FillRect(0, bottomY, barW, bottomH, barNegI.R, barNegI.G, barNegI.B)
	buf.FillRect(barW, bottomY, barW, bottomH, 255, 255, 255)
	buf.FillRect(barW*2, bottomY, barW, bottomH, barPosQ.R, barPosQ.G, barPosQ.B)
	plugeX := w - barW
	buf.FillRect(barW*3, bottomY, plugeX-barW*3, bottomH, 0, 0, 0)
	plugeW := barW / 3
	buf.FillRect(plugeX, bottomY, plugeW*2, bottomH, 0, 0, 0)
	buf.FillRect(plugeX+plugeW*2, bottomY, w-(plugeX+plugeW*2), bottomH, barPlus4.R, barPlus4.G, barPlus4.B)

	textH := text.GlyphHeight * 5
	centerY := h/2 - textH/2
	const amp, pad = 20, 8
	buf.FillRect(0, centerY-pad-amp, w, textH+pad*2+amp*2, 0, 0, 0)
	p.scroller.Render(buf, centerY)

	off := max(int(p.scanOff), 0)
	pix := buf.Bytes()
	for y := 0; y < h; y++ {
		if (y+off)%scanPeriod >= scanDark {
			continue
		}
		row := pix[y*buf.Stride() : (y+1)*buf.Stride()]
		for i := 0; i < len(row); i += 4 {
			row[i+1] = uint8(uint32(row[i+1]) * 82 / 100)
			row[i+2] = uint8(uint32(row[i+2]) * 82 / 100)
			row[i+3] = uint8(uint32(row[i+3]) * 82 / 100)
		}
	}
}

func (p *TestPattern) RegionColor() raster.RGB { return barBlack }
func (p *TestPattern) Name() string            { return "Test Pattern" }
