package effect

import (
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/text"
)

// TextFxDemo shows every per-character text effect on its own labelled line.
type TextFxDemo struct {
	time float64
}

func NewTextFxDemo() *TextFxDemo { return &TextFxDemo{} }

func (d *TextFxDemo) Update(dt float64, _, _ int, _ *region.Scene) { d.time += dt }

const fxScale = 2

// fxLine draws s one rune at a time at column 100, asking each hook for the
// rune's offset, color and visibility.
func fxLine(buf *raster.Buffer, y int, s string, style func(i int) (dx, dy int, c raster.RGB, visible bool)) {
	cw := text.GlyphWidth * fxScale
	i := 0
	for _, ch := range s {
		dx, dy, c, ok := style(i)
		if ok {
			text.DrawChar(buf, 100+i*cw+dx, y+dy, ch, c.R, c.G, c.B, fxScale)
		}
		i++
	}
}

func (d *TextFxDemo) Render(buf *raster.Buffer) {
	buf.Clear(15, 15, 25)
	t := d.time
	lineH := text.TextHeight(fxScale) + 8

	type line struct {
		label, s string
		style    func(i int) (int, int, raster.RGB, bool)
		extra    int
	}
	fixed := func(c raster.RGB) func(int) (int, int, raster.RGB, bool) {
		return func(int) (int, int, raster.RGB, bool) { return 0, 0, c, true }
	}
	pulse := text.PulseColor(rgb(255, 200, 100), t, 2, 0.3)
	lines := []line{
		{"Wave:", "WAVE TEXT", func(i int) (int, int, raster.RGB, bool) {
			dx, dy := text.Wave(i, t, 8, 4)
			return dx, dy, rgb(255, 255, 100), true
		}, 0},
		{"Wobble:", "GLITCHY", func(i int) (int, int, raster.RGB, bool) {
			dx, dy := text.Wobble(i, t, 3)
			return dx, dy, rgb(255, 100, 100), true
		}, 0},
		{"Bounce:", "BOUNCY", func(i int) (int, int, raster.RGB, bool) {
			dx, dy := text.Bounce(i, t, 10, 5)
			return dx, dy, rgb(100, 255, 100), true
		}, 0},
		{"Circle:", "ORBIT", func(i int) (int, int, raster.RGB, bool) {
			dx, dy := text.Orbit(i, t, 6, 2)
			return dx, dy, rgb(100, 200, 255), true
		}, 4},
		{"Rainbow:", "RAINBOW", func(i int) (int, int, raster.RGB, bool) {
			return 0, 0, text.Rainbow(i, t, 2), true
		}, 0},
		{"Gradient:", "GRADIENT", func(i int) (int, int, raster.RGB, bool) {
			return 0, 0, text.Gradient(i, len("GRADIENT"), rgb(255, 50, 50), rgb(50, 50, 255)), true
		}, 0},
		{"Pulse:", "BREATHING", fixed(pulse), 4},
		{"Blink:", "BLINKING", func(int) (int, int, raster.RGB, bool) {
			return 0, 0, rgb(255, 255, 255), text.Blink(t, 2) > 0.5
		}, 0},
		{"Strobe:", "FLASH", func(int) (int, int, raster.RGB, bool) {
			return 0, 0, rgb(255, 50, 50), text.Strobe(t, 3) > 0.5
		}, 0},
		{"Seq Blink:", "SEQUENCE", func(i int) (int, int, raster.RGB, bool) {
			return 0, 0, rgb(255, 200, 50), text.BlinkSequential(i, t, 4, 0.15) > 0.5
		}, 0},
		{"Glitch:", "GLITCHING", func(i int) (int, int, raster.RGB, bool) {
			return 0, 0, rgb(50, 255, 150), text.BlinkRandom(i, t, 8) > 0.5
		}, 8},
	}

	y := 16
	for _, l := range lines {
		drawLabel(buf, 10, y+4, l.label)
		fxLine(buf, y, l.s, l.style)
		y += lineH + l.extra
	}

	drawLabel(buf, 10, y+4, "Shadow:")
	text.DrawTextShadowed(buf, 100, y, "SHADOW", rgb(255, 255, 255), rgb(40, 40, 40), fxScale, 2, 2)
	y += lineH
	drawLabel(buf, 10, y+4, "Outline:")
	text.DrawTextOutlined(buf, 100, y, "OUTLINED", rgb(255, 255, 100), rgb(100, 50, 0), fxScale)
	y += lineH
	drawLabel(buf, 10, y+4, "Reflect:")
	text.DrawTextReflected(buf, 100, y, "MIRROR", rgb(100, 200, 255), fxScale, 2, 0.4)
}

func (d *TextFxDemo) RegionColor() raster.RGB { return rgb(15, 15, 25) }
func (d *TextFxDemo) Name() string            { return "Text FX Demo" }
