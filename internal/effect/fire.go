package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const fireCell = 4

// heatGrid is the classic demo fire: the bottom row is reseeded with heat and
// every cell above averages the cells below it minus a little cooling.
type heatGrid struct {
	heat []uint8
	w, h int
	rng  *noise.Rng
}

func newHeatGrid(seed uint64) heatGrid {
	return heatGrid{heat: make([]uint8, 160*120), w: 160, h: 120, rng: noise.NewRng(seed)}
}

// resize reallocates a zeroed grid when the viewport changes cell count.
func (g *heatGrid) resize(width, height int) bool {
	nw, nh := max(width/fireCell, 1), max(height/fireCell, 1)
	if nw == g.w && nh == g.h {
		return false
	}
	g.w, g.h = nw, nh
	g.heat = make([]uint8, nw*nh)
	return true
}

// seed writes flickering base heat for column x at row y.
func (g *heatGrid) seed(x, y int, t float64) {
	flicker := g.rng.Uint8() % 80
	wave := int(math.Sin(t*6+float64(x)*0.08) * 40)
	base := min(max(180+wave, 120), 255)
	g.heat[y*g.w+x] = uint8(min(base+int(flicker), 255))
}

// propagate moves heat one row up, drifted sideways by wind.
func (g *heatGrid) propagate(t float64) {
	w, h := g.w, g.h
	wind := int(math.Sin(t*2.5) * 2)
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := ((x+wind)%w + w) % w
			x1 := (x0 + w - 1) % w
			x2 := (x0 + 1) % w

			below := int(g.heat[y*w+x0])
			left := int(g.heat[y*w+x1])
			right := int(g.heat[y*w+x2])
			below2 := below
			if y+1 < h {
				below2 = int(g.heat[(y+1)*w+x0])
			}
			heat := (below + left + right + below2) / 4
			cooling := 1 + int(g.rng.Uint8()%3)
			g.heat[(y-1)*w+x] = uint8(max(heat-cooling, 0))
		}
	}
}

// Fire fills the screen with chunky 4 px flames.
type Fire struct {
	grid heatGrid
	pal  []raster.RGB
	time float64
	sim  stepper
}

func NewFire() *Fire {
	return &Fire{grid: newHeatGrid(0x1234ABCD), pal: palette.Fire()}
}

func (f *Fire) Update(dt float64, w, h int, _ *region.Scene) {
	f.grid.resize(w, h)
	f.time += dt

	g := &f.grid
	for n := f.sim.advance(dt); n > 0; n-- {
		for x := 0; x < g.w; x++ {
			g.seed(x, g.h-1, f.time)
		}
		g.propagate(f.time)
	}
}

func (f *Fire) Render(buf *raster.Buffer) {
	buf.Clear(0, 0, 0)
	g := &f.grid
	for y := 0; y < g.h; y++ {
		wave := int(math.Sin(f.time*3+float64(y)*0.1) * 2)
		for x := 0; x < g.w; x++ {
			c := f.pal[g.heat[y*g.w+x]]
			buf.FillRect(x*fireCell+wave, y*fireCell, fireCell, fireCell, c.R, c.G, c.B)
		}
	}
}

func (f *Fire) RegionColor() raster.RGB { return rgb(30, 8, 0) }
func (f *Fire) Name() string            { return "Fire" }
