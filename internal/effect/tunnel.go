package effect

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/texture"
)

const (
	tunnelPad     = 450 // LUT margin so curve shifts stay inside it
	tunnelHues    = 256
	tunnelFlySpd  = 0.7
	tunnelSpin    = 0.12
	tunnelCycle   = 0.12
	tunnelRadius  = 200.0
	tunnelTexelsV = 48.0
)

// Tunnel flies down a curving brick tunnel. Polar coordinates come from
// tables built once per viewport; the curve shifts each pixel by the square
// of its distance from the screen centre, so the walls occlude the
// vanishing point on sharp turns.
type Tunnel struct {
	time       float64
	depth      []float32 // 0 at the exact centre
	angle      []float32 // turns, [-0.5, 0.5]
	fog        []uint16
	proximity  []uint8
	lw, lh     int
	sw, sh     int
	curveX     float64
	curveY     float64
	sine       [256]uint8
	wall       *texture.IndexedMipTexture
	lumPalette []raster.RGB // hue*256 + luminance
}

func NewTunnel() *Tunnel {
	t := &Tunnel{
		wall:       texture.IndexedMipFromGrayscale(texture.BrickWall()),
		lumPalette: make([]raster.RGB, 0, tunnelHues*256),
	}
	for i := range t.sine {
		t.sine[i] = uint8((math.Sin(float64(i)/256*2*math.Pi)*0.5 + 0.5) * 255)
	}
	for h := range tunnelHues {
		c := palette.HSV(float64(h)/tunnelHues*360, 0.7, 0.95)
		for l := range 256 {
			t.lumPalette = append(t.lumPalette, rgb(
				uint8(uint16(l)*uint16(c.R)>>8),
				uint8(uint16(l)*uint16(c.G)>>8),
				uint8(uint16(l)*uint16(c.B)>>8),
			))
		}
	}
	return t
}

func (t *Tunnel) buildTables(w, h int) {
	if t.sw == w && t.sh == h {
		return
	}
	lw, lh := w+2*tunnelPad, h+2*tunnelPad
	n := lw * lh
	t.depth = make([]float32, 0, n)
	t.angle = make([]float32, 0, n)
	t.fog = make([]uint16, 0, n)
	cx, cy := float64(lw)/2, float64(lh)/2
	half := math.Min(cx, cy)
	for y := 0; y < lh; y++ {
		dy := float64(y) - cy
		for x := 0; x < lw; x++ {
			dx := float64(x) - cx
			dist := math.Hypot(dx, dy)
			d := 0.0
			if dist >= 1 {
				d = tunnelRadius / dist
			}
			t.depth = append(t.depth, float32(d))
			t.angle = append(t.angle, float32(math.Atan2(dy, dx)/(2*math.Pi)))
			// sqrt fog with a floor: the vanishing point never goes fully black
			t.fog = append(t.fog, uint16(30+math.Sqrt(math.Min(dist/half, 1))*226))
		}
	}

	scx, scy := float64(w)/2, float64(h)/2
	maxD := math.Max(math.Hypot(scx, scy), 1)
	t.proximity = make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-scx, float64(y)-scy) / maxD
			t.proximity = append(t.proximity, uint8(math.Min(d*d*255, 255)))
		}
	}
	t.lw, t.lh, t.sw, t.sh = lw, lh, w, h
}

func (t *Tunnel) Update(dt float64, width, height int, _ *region.Scene) {
	t.time += dt
	t.buildTables(width, height)
	// amplitudes are tuned for 640×480
	s := t.time
	t.curveX = (math.Sin(s*0.23)*220 + math.Sin(s*0.51)*100 + math.Sin(s*0.89)*40) * float64(width) / 640
	t.curveY = (math.Cos(s*0.19)*180 + math.Cos(s*0.43)*80 + math.Cos(s*0.71)*30) * float64(height) / 480
}

func (t *Tunnel) Render(buf *raster.Buffer) {
	if buf.Width() != t.sw || buf.Height() != t.sh {
		buf.Clear(0, 0, 0)
		return
	}
	pix := buf.Bytes()
	depthOff := t.time * tunnelFlySpd
	angleOff := t.time * tunnelSpin / (2 * math.Pi)
	colorOff := t.time * tunnelCycle * 100
	cx, cy := int(t.curveX), int(t.curveY)
	lampPhase := int(t.time * tunnelFlySpd * 3 * 256)

	pi, si := 0, 0
	for sy := 0; sy < t.sh; sy++ {
		for sx := 0; sx < t.sw; sx++ {
			prox := int(t.proximity[si])
			si++
			lx := sx + tunnelPad - (cx*prox)>>8
			ly := sy + tunnelPad - (cy*prox)>>8
			p := pix[pi : pi+4]
			pi += 4
			if lx < 0 || lx >= t.lw || ly < 0 || ly >= t.lh {
				p[0], p[1], p[2], p[3] = 255, 0, 0, 0
				continue
			}
			li := ly*t.lw + lx
			depth := float64(t.depth[li])
			if depth == 0 {
				p[0], p[1], p[2], p[3] = 255, 0, 0, 0
				continue
			}
			d := depth + depthOff
			a := float64(t.angle[li]) + angleOff

			level := 0
			if depth > 3 {
				level = 1
			}
			lum := t.wall.SampleIndexMipped(int(a*256), int(d*tunnelTexelsV), level)
			hue := int(d*12+colorOff) & (tunnelHues - 1)
			c := t.lumPalette[hue*256+int(lum)]
			fog := uint32(t.fog[li])

			// ceiling glow plus lamp pools that only light the ceiling
			over := uint32(t.sine[int(a*256)&255])
			over = over * over >> 8
			lamp := uint32(t.sine[(int(d*256)+lampPhase)&255])
			lamp = lamp * lamp >> 8
			lamp = lamp * lamp >> 8
			hl := uint8((over*35 + (lamp*over>>8)*55) >> 8)

			p[0] = 255
			p[1] = sat8add(uint8(uint32(c.B)*fog>>8), hl)
			p[2] = sat8add(uint8(uint32(c.G)*fog>>8), hl)
			p[3] = sat8add(uint8(uint32(c.R)*fog>>8), hl)
		}
	}
}

func sat8add(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s < 255 {
		return uint8(s)
	}
	return 255
}

func (t *Tunnel) RegionColor() raster.RGB { return raster.RGB{} }
func (t *Tunnel) Name() string            { return "Tunnel" }
