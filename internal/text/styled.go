package text

import "wallfacer/internal/raster"

// OffsetFunc displaces character i at time t.
type OffsetFunc func(i int, t float64) (dx, dy int)

// ColorFunc colors character i of n at time t; base is the scroller color.
type ColorFunc func(i, n int, t float64, base raster.RGB) raster.RGB

// VisibilityFunc returns the brightness of character i at time t.
type VisibilityFunc func(i int, t float64) float64

func WaveOffset(amplitude, frequency float64) OffsetFunc {
	return func(i int, t float64) (int, int) { return Wave(i, t, amplitude, frequency) }
}

func WobbleOffset(amount float64) OffsetFunc {
	return func(i int, t float64) (int, int) { return Wobble(i, t, amount) }
}

func BounceOffset(height, speed float64) OffsetFunc {
	return func(i int, t float64) (int, int) { return Bounce(i, t, height, speed) }
}

func OrbitOffset(radius, speed float64) OffsetFunc {
	return func(i int, t float64) (int, int) { return Orbit(i, t, radius, speed) }
}

func RainbowColor(speed float64) ColorFunc {
	return func(i, _ int, t float64, _ raster.RGB) raster.RGB { return Rainbow(i, t, speed) }
}

func GradientColor(start, end raster.RGB) ColorFunc {
	return func(i, n int, _ float64, _ raster.RGB) raster.RGB { return Gradient(i, n, start, end) }
}

func PulseColorFX(speed, minBrightness float64) ColorFunc {
	return func(_, _ int, t float64, base raster.RGB) raster.RGB {
		return PulseColor(base, t, speed, minBrightness)
	}
}

func BlinkVisibility(rate float64) VisibilityFunc {
	return func(_ int, t float64) float64 { return Blink(t, rate) }
}

func StrobeVisibility(rate float64) VisibilityFunc {
	return func(_ int, t float64) float64 { return Strobe(t, rate) }
}

func SequentialVisibility(rate, delay float64) VisibilityFunc {
	return func(i int, t float64) float64 { return BlinkSequential(i, t, rate, delay) }
}

func RandomVisibility(rate float64) VisibilityFunc {
	return func(i int, t float64) float64 { return BlinkRandom(i, t, rate) }
}

type layerKind int

const (
	layerNone layerKind = iota
	layerShadow
	layerOutline
	layerReflection
)

// Layer is an extra pass drawn with the text: a shadow, an outline or a reflection.
type Layer struct {
	kind   layerKind
	dx, dy int
	color  raster.RGB
	gap    int
	fade   float64
}

func ShadowLayer(dx, dy int, c raster.RGB) Layer {
	return Layer{kind: layerShadow, dx: dx, dy: dy, color: c}
}

func OutlineLayer(c raster.RGB) Layer { return Layer{kind: layerOutline, color: c} }

// ReflectionLayer draws a flipped copy gap pixels below, dimmed by fade.
func ReflectionLayer(gap int, fade float64) Layer {
	return Layer{kind: layerReflection, gap: gap, fade: fade}
}

// StyledScroller composes a Scroller with one effect of each kind.
// Nil functions leave characters unmodified.
type StyledScroller struct {
	*Scroller
	time       float64
	offset     OffsetFunc
	colorFX    ColorFunc
	visibility VisibilityFunc
	layer      Layer
}

func NewStyledScroller(s string) *StyledScroller {
	return &StyledScroller{Scroller: NewScroller(s)}
}

func (s *StyledScroller) Offset(f OffsetFunc) *StyledScroller {
	s.offset = f
	return s
}

func (s *StyledScroller) ColorFX(f ColorFunc) *StyledScroller {
	s.colorFX = f
	return s
}

func (s *StyledScroller) Visibility(f VisibilityFunc) *StyledScroller {
	s.visibility = f
	return s
}

func (s *StyledScroller) Layer(l Layer) *StyledScroller {
	s.layer = l
	return s
}

func (s *StyledScroller) Update(dt float64) {
	s.Scroller.Update(dt)
	s.time += dt
}

func (s *StyledScroller) charOffset(i int) (int, int) {
	if s.offset == nil {
		return 0, 0
	}
	return s.offset(i, s.time)
}

func (s *StyledScroller) charColor(i, n int) raster.RGB {
	if s.colorFX == nil {
		return s.color
	}
	return s.colorFX(i, n, s.time, s.color)
}

func (s *StyledScroller) charVisibility(i int) float64 {
	if s.visibility == nil {
		return 1
	}
	return s.visibility(i, s.time)
}

// Render draws the layer pass and the text with its top at baseY.
func (s *StyledScroller) Render(buf *raster.Buffer, baseY int) {
	switch s.layer.kind {
	case layerShadow:
		s.renderChars(buf, baseY, s.layer.dx, s.layer.dy, &s.layer.color)
	case layerOutline:
		for _, o := range outlineOffsets {
			s.renderChars(buf, baseY, o[0], o[1], &s.layer.color)
		}
	case layerReflection:
		s.renderChars(buf, baseY, 0, 0, nil)
		s.renderReflection(buf, baseY)
		return
	}
	s.renderChars(buf, baseY, 0, 0, nil)
}

func (s *StyledScroller) renderChars(buf *raster.Buffer, baseY, ox, oy int, override *raster.RGB) {
	cw := GlyphWidth * s.scale
	n := len([]rune(s.text))
	x := int(s.x)
	i := 0
	for _, ch := range s.text {
		vis := s.charVisibility(i)
		if vis >= 0.01 && x+cw+ox > -cw && x+ox < buf.Width()+cw {
			dx, dy := s.charOffset(i)
			c := s.charColor(i, n)
			if override != nil {
				c = *override
			}
			if vis < 1 {
				c = FadeColor(c, vis)
			}
			DrawChar(buf, x+dx+ox, baseY+dy+oy, ch, c.R, c.G, c.B, s.scale)
		}
		x += cw
		i++
	}
}

func (s *StyledScroller) renderReflection(buf *raster.Buffer, baseY int) {
	cw := GlyphWidth * s.scale
	n := len([]rune(s.text))
	x := int(s.x)
	ry := baseY + TextHeight(s.scale) + s.layer.gap
	i := 0
	for _, ch := range s.text {
		vis := s.charVisibility(i) * s.layer.fade
		if vis >= 0.01 {
			dx, dy := s.charOffset(i)
			c := FadeColor(s.charColor(i, n), vis)
			// the reflection moves opposite to the text
			DrawCharFlipped(buf, x+dx, ry-dy, ch, c.R, c.G, c.B, s.scale)
		}
		x += cw
		i++
	}
}

// RenderWithBackground fills a strip tall enough for the text, its wave and
// its reflection, then renders.
func (s *StyledScroller) RenderWithBackground(buf *raster.Buffer, y int, bg raster.RGB, padding, waveAmplitude int) {
	h := s.Height() + padding*2 + 2*waveAmplitude
	if s.layer.kind == layerReflection {
		h += s.Height() + s.layer.gap
	}
	buf.FillRect(0, y-padding-waveAmplitude, buf.Width(), h, bg.R, bg.G, bg.B)
	s.Render(buf, y)
}
