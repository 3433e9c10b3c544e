package text

import (
	"math"

	"wallfacer/internal/raster"
)

// Direction is the travel direction of a scroller.
type Direction int

const (
	Leftward Direction = iota
	Rightward
)

// Mode selects wrapping or bouncing.
type Mode int

const (
	Loop Mode = iota
	PingPong
)

const defaultScreenWidth = 640

// Scroller moves a line of text horizontally. Setters return the scroller so
// construction can be chained.
type Scroller struct {
	text    string
	x       float64
	speed   float64 // px/s, always positive
	dir     Direction
	mode    Mode
	scale   int
	color   raster.RGB
	ppDir   float64 // ±1 in ping-pong mode
	screenW int
}

// NewScroller starts off the right edge, moving left at 100 px/s in white.
func NewScroller(s string) *Scroller {
	return &Scroller{
		text:    s,
		x:       defaultScreenWidth,
		speed:   100,
		scale:   1,
		color:   raster.RGB{R: 255, G: 255, B: 255},
		ppDir:   -1,
		screenW: defaultScreenWidth,
	}
}

func (s *Scroller) Speed(pxPerSec float64) *Scroller {
	s.speed = math.Abs(pxPerSec)
	return s
}

// Direction sets the travel direction and restarts from the matching edge.
func (s *Scroller) Direction(d Direction) *Scroller {
	s.dir = d
	if d == Leftward {
		s.x = float64(s.screenW)
		s.ppDir = -1
	} else {
		s.x = -float64(s.Width())
		s.ppDir = 1
	}
	return s
}

func (s *Scroller) Mode(m Mode) *Scroller {
	s.mode = m
	return s
}

func (s *Scroller) Scale(scale int) *Scroller {
	s.scale = max(scale, 1)
	return s
}

func (s *Scroller) Color(r, g, b uint8) *Scroller {
	s.color = raster.RGB{R: r, G: g, B: b}
	return s
}

func (s *Scroller) Text() string     { return s.text }
func (s *Scroller) X() float64       { return s.x }
func (s *Scroller) Width() int       { return TextWidth(s.text, s.scale) }
func (s *Scroller) Height() int      { return TextHeight(s.scale) }
func (s *Scroller) RGB() raster.RGB  { return s.color }
func (s *Scroller) ScaleFactor() int { return s.scale }
func (s *Scroller) ScreenWidth() int { return s.screenW }
func (s *Scroller) SetText(t string) { s.text = t }
func (s *Scroller) SetX(x float64)   { s.x = x }
func (s *Scroller) Dir() Direction   { return s.dir }

// SetScreenWidth updates the wrap width and pulls the start position in
// so the text does not begin beyond the real screen edge.
func (s *Scroller) SetScreenWidth(w int) {
	s.screenW = w
	if s.dir == Leftward {
		s.x = math.Min(s.x, float64(w))
	} else {
		s.x = math.Max(s.x, -float64(s.Width()))
	}
}

// Update advances the position by dt seconds.
func (s *Scroller) Update(dt float64) {
	tw := float64(s.Width())
	w := float64(s.screenW)

	if s.mode == PingPong {
		s.x += s.speed * dt * s.ppDir
		hi := math.Max(w-tw, 0)
		if s.x <= 0 {
			s.x = 0
			s.ppDir = 1
		} else if s.x >= hi {
			s.x = hi
			s.ppDir = -1
		}
		return
	}

	if tw <= 0 {
		return
	}
	if s.dir == Leftward {
		s.x -= s.speed * dt
		if s.x < -tw {
			s.x = math.Mod(s.x, tw)
		}
	} else {
		s.x += s.speed * dt
		if s.x > w {
			s.x = math.Mod(s.x, tw) - tw
		}
	}
}

// Render draws the text with its top at y.
func (s *Scroller) Render(buf *raster.Buffer, y int) {
	DrawText(buf, int(s.x), y, s.text, s.color.R, s.color.G, s.color.B, s.scale)
}

// RenderWithBackground fills a full-width strip padded around the text first.
func (s *Scroller) RenderWithBackground(buf *raster.Buffer, y int, bg raster.RGB, padding int) {
	buf.FillRect(0, y-padding, buf.Width(), s.Height()+padding*2, bg.R, bg.G, bg.B)
	s.Render(buf, y)
}

// SineScroller is a looping scroller whose characters ride a sine wave and
// repeat to fill the screen.
type SineScroller struct {
	*Scroller
	amplitude float64
	frequency float64
	time      float64
}

// NewSineScroller defaults to a 20 px wave at frequency 3.
func NewSineScroller(s string) *SineScroller {
	return &SineScroller{Scroller: NewScroller(s), amplitude: 20, frequency: 3}
}

func (s *SineScroller) Amplitude(a float64) *SineScroller {
	s.amplitude = a
	return s
}

func (s *SineScroller) Frequency(f float64) *SineScroller {
	s.frequency = f
	return s
}

func (s *SineScroller) Update(dt float64) {
	s.Scroller.Update(dt)
	s.time += dt
}

// Render draws as many copies as needed to cover the screen.
func (s *SineScroller) Render(buf *raster.Buffer, baseY int) {
	cw := GlyphWidth * s.scale
	tw := float64(s.Width())
	if tw <= 0 {
		return
	}
	c := s.color
	for bx := s.x; int(bx) < s.screenW; bx += tw {
		i := 0
		for _, ch := range s.text {
			x := int(bx) + i*cw
			i++
			if x+cw < 0 {
				continue
			}
			if x > s.screenW {
				break
			}
			phase := float64(x)*0.02 + s.time*s.frequency
			DrawChar(buf, x, baseY+int(math.Sin(phase)*s.amplitude), ch, c.R, c.G, c.B, s.scale)
		}
	}
}

// Typewriter reveals text one character at a time.
type Typewriter struct {
	text     []rune
	revealed int
	timer    float64
	cps      float64
	scale    int
	color    raster.RGB
	complete bool
}

// NewTypewriter types at 10 characters per second.
func NewTypewriter(s string) *Typewriter {
	return &Typewriter{text: []rune(s), cps: 10, scale: 1, color: raster.RGB{R: 255, G: 255, B: 255}}
}

func (t *Typewriter) Speed(cps float64) *Typewriter {
	t.cps = math.Max(cps, 0.1)
	return t
}

func (t *Typewriter) Scale(scale int) *Typewriter {
	t.scale = max(scale, 1)
	return t
}

func (t *Typewriter) Color(r, g, b uint8) *Typewriter {
	t.color = raster.RGB{R: r, G: g, B: b}
	return t
}

func (t *Typewriter) Complete() bool { return t.complete }
func (t *Typewriter) Revealed() int  { return t.revealed }

func (t *Typewriter) Reset() {
	t.revealed = 0
	t.timer = 0
	t.complete = false
}

func (t *Typewriter) Update(dt float64) {
	if t.complete {
		return
	}
	t.timer += dt
	t.revealed = min(int(t.timer*t.cps), len(t.text))
	if t.revealed >= len(t.text) {
		t.complete = true
	}
}

func (t *Typewriter) visible() string { return string(t.text[:t.revealed]) }

func (t *Typewriter) Render(buf *raster.Buffer, x, y int) {
	DrawText(buf, x, y, t.visible(), t.color.R, t.color.G, t.color.B, t.scale)
}

// RenderCentered centers the revealed part horizontally.
func (t *Typewriter) RenderCentered(buf *raster.Buffer, y int) {
	x := (buf.Width() - TextWidth(t.visible(), t.scale)) / 2
	t.Render(buf, x, y)
}
