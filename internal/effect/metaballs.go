package effect

import (
	"math"

	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const numBalls = 8

type ball struct {
	x, y, vx, vy, radius float64
}

// Metaballs sums an r²/d² field over bouncing balls and maps it through a
// black to magenta to white ramp, evaluated on 2×2 blocks.
type Metaballs struct {
	balls []ball
	pal   [256]raster.RGB
	w, h  int
}

func NewMetaballs() *Metaballs {
	m := &Metaballs{}
	for i := range m.pal {
		t := float64(i) / 255
		if t < 0.5 {
			t2 := t * 2
			m.pal[i] = rgb(uint8(t2*200), uint8(t2*50), uint8(t2*255))
		} else {
			t2 := (t - 0.5) * 2
			m.pal[i] = rgb(uint8(200+t2*55), uint8(50+t2*205), 255)
		}
	}
	return m
}

func (m *Metaballs) init(w, h int) {
	m.w, m.h = w, h
	m.balls = m.balls[:0]
	dim := float64(min(w, h))
	for i := range numBalls {
		angle := float64(i) / numBalls * 2 * math.Pi
		speed := 50 + float64(i)*20
		m.balls = append(m.balls, ball{
			x:      float64(w)/2 + math.Cos(angle)*100,
			y:      float64(h)/2 + math.Sin(angle)*100,
			vx:     math.Cos(angle) * speed,
			vy:     math.Sin(angle) * speed,
			radius: dim * (0.08 + float64(i)*0.015),
		})
	}
}

func (m *Metaballs) Update(dt float64, width, height int, _ *region.Scene) {
	if width != m.w || height != m.h || len(m.balls) == 0 {
		m.init(width, height)
	}
	w, h := float64(width), float64(height)
	for i := range m.balls {
		b := &m.balls[i]
		b.x += b.vx * dt
		b.y += b.vy * dt
		switch {
		case b.x < b.radius:
			b.x, b.vx = b.radius, -b.vx
		case b.x > w-b.radius:
			b.x, b.vx = w-b.radius, -b.vx
		}
		switch {
		case b.y < b.radius:
			b.y, b.vy = b.radius, -b.vy
		case b.y > h-b.radius:
			b.y, b.vy = h-b.radius, -b.vy
		}
	}
}

func (m *Metaballs) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			px, py := float64(x)+0.5, float64(y)+0.5
			field := 0.0
			for _, b := range m.balls {
				dx, dy := px-b.x, py-b.y
				field += b.radius * b.radius / (dx*dx + dy*dy + 1)
			}
			c := m.pal[int(math.Min(field*128, 255))]
			buf.FillRect(x, y, 2, 2, c.R, c.G, c.B)
		}
	}
}

func (m *Metaballs) RegionColor() raster.RGB { return raster.RGB{} }
func (m *Metaballs) Name() string            { return "Metaballs" }
