package effect

import (
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/text"
)

type styledRow struct {
	label string
	s     *text.StyledScroller
	bg    raster.RGB
	above int // vertical room the offset needs above the baseline
	below int // room below the glyphs, past padding
}

// ScrollerDemo stacks styled scrollers, each combining one offset, color,
// visibility or layer effect, with a looping typewriter.
type ScrollerDemo struct {
	rows  []styledRow
	typer *text.Typewriter
	pause float64
}

func styled(s string, speed float64, dir text.Direction, scale int, c raster.RGB) *text.StyledScroller {
	st := text.NewStyledScroller(s)
	st.Speed(speed).Direction(dir).Scale(scale).Color(c.R, c.G, c.B)
	return st
}

func NewScrollerDemo() *ScrollerDemo {
	d := &ScrollerDemo{}
	rainbow := styled("RAINBOW WAVE --- Classic demoscene combo ---", 100, text.Leftward, 2, rgb(255, 255, 255)).
		Offset(text.WaveOffset(12, 4)).
		ColorFX(text.RainbowColor(2))
	bounce := styled("BOUNCY SHADOW", 80, text.Rightward, 2, rgb(255, 200, 100)).
		Offset(text.BounceOffset(15, 6)).
		Layer(text.ShadowLayer(3, 3, rgb(40, 30, 20)))
	wobble := styled("GLITCHY OUTLINE", 60, text.Leftward, 2, rgb(255, 255, 100)).
		Offset(text.WobbleOffset(2)).
		Layer(text.OutlineLayer(rgb(100, 80, 0)))
	mirror := styled("MIRROR PULSE", 50, text.Rightward, 3, rgb(100, 200, 255)).
		ColorFX(text.PulseColorFX(2, 0.4)).
		Layer(text.ReflectionLayer(4, 0.3))
	glitch := styled("CYBER GLITCH --- SYSTEM ERROR ---", 120, text.Leftward, 2, rgb(50, 255, 150)).
		ColorFX(text.GradientColor(rgb(255, 50, 50), rgb(50, 255, 50))).
		Visibility(text.RandomVisibility(6))
	orbit := styled("ORBITAL GRADIENT", 70, text.Leftward, 2, rgb(255, 255, 255)).
		Offset(text.OrbitOffset(8, 3)).
		ColorFX(text.GradientColor(rgb(255, 100, 255), rgb(100, 255, 255)))

	d.rows = []styledRow{
		{"Rainbow+Wave:", rainbow, rgb(30, 20, 40), 12, 12},
		{"Shadow+Bounce:", bounce, rgb(40, 35, 25), 15, 3},
		{"Outline+Wobble:", wobble, rgb(35, 35, 20), 2, 2},
		{"Reflect+Pulse:", mirror, rgb(20, 30, 40), 0, 4 + text.TextHeight(3)},
		{"Glitch+Gradient:", glitch, rgb(20, 35, 30), 0, 0},
		{"Circle+Gradient:", orbit, rgb(35, 25, 35), 8, 8},
	}
	d.typer = text.NewTypewriter("Typewriter with styled scrollers demo...").Speed(15).Scale(1).Color(150, 150, 150)
	return d
}

func (d *ScrollerDemo) Update(dt float64, w, _ int, _ *region.Scene) {
	for _, r := range d.rows {
		r.s.SetScreenWidth(w)
		r.s.Update(dt)
	}
	if d.typer.Complete() {
		d.pause += dt
		if d.pause > 3 {
			d.typer.Reset()
			d.pause = 0
		}
	} else {
		d.typer.Update(dt)
	}
}

func (d *ScrollerDemo) Render(buf *raster.Buffer) {
	buf.Clear(15, 15, 25)
	const padding, gap = 6, 4

	y := 8
	for _, r := range d.rows {
		drawLabel(buf, 10, y, r.label)
		y += text.GlyphHeight + gap + padding + r.above
		r.s.RenderWithBackground(buf, y, r.bg, padding, 0)
		y += r.s.Height() + padding + r.below + gap
	}
	d.typer.Render(buf, 10, y+gap)
}

func (d *ScrollerDemo) RegionColor() raster.RGB { return rgb(15, 15, 25) }
func (d *ScrollerDemo) Name() string            { return "Scroller Demo" }

func drawLabel(buf *raster.Buffer, x, y int, s string) {
	text.DrawText(buf, x, y, s, 100, 100, 100, 1)
}
