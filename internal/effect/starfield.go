package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	starCount    = 300
	starMaxTrail = 40.0
	starFar      = 600.0
)

type star struct {
	x, y, z, hue float64
}

// Starfield flies through 300 colored stars that leave perspective trails.
type Starfield struct {
	stars  []star
	cx, cy float64
	speed  float64
	rng    *noise.Rng
}

func NewStarfield() *Starfield {
	s := &Starfield{cx: 320, cy: 240, speed: 200, rng: noise.NewRng(12345)}
	s.stars = make([]star, starCount)
	for i := range s.stars {
		s.stars[i] = s.randomStar()
	}
	return s
}

func (s *Starfield) randomStar() star {
	return star{
		x:   (s.rng.Float64() - 0.5) * 1000,
		y:   (s.rng.Float64() - 0.5) * 1000,
		z:   s.rng.Range(100, starFar),
		hue: s.rng.Range(0, 360),
	}
}

func (s *Starfield) Update(dt float64, w, h int, _ *region.Scene) {
	s.cx = float64(w) / 2
	s.cy = float64(h) / 2
	for i := range s.stars {
		st := &s.stars[i]
		st.z -= s.speed * dt
		st.hue = math.Mod(math.Mod(st.hue+dt*720, 360)+360, 360)
		if st.z <= 1 {
			*st = s.randomStar()
			st.z = 500
		}
	}
}

func (s *Starfield) Render(buf *raster.Buffer) {
	buf.Clear(0, 0, 0)

	vp := float64(min(buf.Width(), buf.Height())) / 480
	fov := 256 * vp
	maxTrail := starMaxTrail * vp

	for _, st := range s.stars {
		sx := st.x/st.z*fov + s.cx
		sy := st.y/st.z*fov + s.cy

		bright := float64(raster.Clamp255((1 - st.z/starFar) * 255))
		c := palette.HSV(st.hue, 1, bright/255)

		trail := int(math.Ceil((1 - clampf(st.z/starFar, 0, 1)) * maxTrail))
		if trail > 0 {
			dx := (sx - s.cx) / st.z
			dy := (sy - s.cy) / st.z
			for i := 1; i <= trail; i++ {
				fade := max(1-float64(i)/float64(trail+1), 0)
				t := palette.Scale(c, fade)
				buf.SetPixel(int(sx-dx*float64(i)), int(sy-dy*float64(i)), t.R, t.G, t.B)
			}
		}

		px, py := int(sx), int(sy)
		if st.z < 100 {
			buf.SetPixel(px, py, 255, 255, 255)
			buf.SetPixel(px-1, py, c.R, c.G, c.B)
			buf.SetPixel(px+1, py, c.R, c.G, c.B)
			buf.SetPixel(px, py-1, c.R, c.G, c.B)
			buf.SetPixel(px, py+1, c.R, c.G, c.B)
		} else {
			buf.SetPixel(px, py, c.R, c.G, c.B)
		}
	}
}

func (s *Starfield) RegionColor() raster.RGB { return rgb(2, 2, 8) }
func (s *Starfield) Name() string            { return "Starfield" }
