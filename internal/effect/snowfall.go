package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	maxFlakes     = 3000
	targetFlakes  = 2000
	flakeSpawn    = 300.0
	groundCap     = 60
	regionCap     = 30
	slideLimit    = 1 // adjacent columns may differ by this much (45°)
	slidePasses   = 5
	windAmplitude = 40.0
	windPeriod    = 8.0

	// TagChyronTop marks a region snow should fall through.
	TagChyronTop = "chyron_top"
)

type flake struct {
	x, y, vy float64
	size     int
	bright   uint8
}

// Snowfall piles snow on the ground and on top of regions. Piles slide until
// no two neighbouring columns differ by more than one pixel, and snow pushed
// past a region edge falls off again as new flakes.
type Snowfall struct {
	flakes []flake
	active int

	surfTop, surfBot []int // per column, first region's top and bottom row, or h
	ground, onRegion []int
	cap              []int

	rng   *noise.Rng
	time  float64
	spawn float64
	h     int
	watch sceneWatch
}

func NewSnowfall() *Snowfall {
	s := &Snowfall{flakes: make([]flake, maxFlakes), rng: noise.NewRng(0x5A0F)}
	for i := range s.flakes {
		s.flakes[i] = flake{vy: 60, size: 1, bright: 220}
	}
	return s
}

func (s *Snowfall) rebuild(w, h int, scene *region.Scene) {
	s.h = h
	s.surfTop = fillInt(make([]int, w), h)
	s.surfBot = fillInt(make([]int, w), h)
	s.ground = make([]int, w)
	s.onRegion = make([]int, w)
	s.cap = make([]int, w)
	s.active = 0

	if scene != nil {
		for i := range scene.Regions {
			r := &scene.Regions[i]
			if r.Name == TagChyronTop || r.HasTag(TagChyronTop) || r.Shape == nil {
				continue
			}
			minX, minY, maxX, maxY, ok := r.Shape.Bounds()
			if !ok {
				continue
			}
			x0, x1 := max(int(minX), 0), min(int(maxX)+1, w)
			y0, y1 := max(int(minY), 0), min(int(maxY)+1, h)
			for col := x0; col < x1; col++ {
				top, bot, found := h, 0, false
				for row := y0; row < y1; row++ {
					if r.Shape.Contains(float64(col)+0.5, float64(row)+0.5) {
						if !found {
							top, found = row, true
						}
						bot = row
					}
				}
				if found && top < s.surfTop[col] {
					s.surfTop[col], s.surfBot[col] = top, bot
				}
			}
		}
	}

	// columns steeper than 45° hold no snow, edge columns a little
	for x := 0; x < w; x++ {
		c := s.surfTop[x]
		if c >= h {
			continue
		}
		left, right := h, h
		if x > 0 {
			left = s.surfTop[x-1]
		}
		if x+1 < w {
			right = s.surfTop[x+1]
		}
		leftOK := left < h && absInt(left-c) <= 1
		rightOK := right < h && absInt(right-c) <= 1
		switch {
		case leftOK && rightOK:
			s.cap[x] = regionCap
		case leftOK || rightOK:
			s.cap[x] = regionCap / 4
		}
	}
}

func (s *Snowfall) spawnFlake(w int) {
	if s.active >= maxFlakes {
		return
	}
	f := &s.flakes[s.active]
	f.x = s.rng.Range(0, float64(w))
	f.y = s.rng.Range(-20, 0)
	switch roll := s.rng.Float64(); {
	case roll < 0.15:
		f.size = 4
	case roll < 0.40:
		f.size = 3
	case roll < 0.70:
		f.size = 2
	default:
		f.size = 1
	}
	// bigger flakes fall slower
	f.vy = s.rng.Range(30, 80) + float64(5-f.size)*15
	f.bright = 200 + uint8(s.rng.Uint32()%56)
	s.active++
}

// deposit adds amount at col and a diminishing share to spread columns on
// each side, never exceeding limit(col).
func deposit(heights []int, col, amount, spread int, ok func(int) bool, limit func(int) int) {
	if heights[col] < limit(col) {
		heights[col] = min(heights[col]+amount, limit(col))
	}
	for off := 1; off <= spread; off++ {
		side := amount / (off + 1)
		for _, c := range [2]int{col - off, col + off} {
			if c >= 0 && c < len(heights) && ok(c) {
				heights[c] = min(heights[c]+side, limit(c))
			}
		}
	}
}

func flakeDeposit(size int) (amount, spread int) {
	switch size {
	case 1:
		return 1, 0
	case 2, 3:
		return 2, 1
	}
	return 3, 2
}

// land reports whether f came to rest this frame, adding its snow.
func (s *Snowfall) land(f *flake) bool {
	col, fy := int(math.Floor(f.x)), int(math.Floor(f.y))
	if col < 0 || col >= len(s.surfTop) {
		return false
	}
	amount, spread := flakeDeposit(f.size)

	if s.cap[col] > 0 && s.surfTop[col] < s.h {
		surface := s.surfTop[col] - s.onRegion[col]
		// flakes blown underneath a region keep falling
		if fy >= surface && fy <= s.surfBot[col] {
			deposit(s.onRegion, col, amount, spread,
				func(c int) bool { return s.surfTop[c] < s.h && s.cap[c] > 0 },
				func(c int) int { return s.cap[c] })
			return true
		}
	}
	if fy >= s.h-1-s.ground[col] {
		deposit(s.ground, col, amount, spread,
			func(int) bool { return true },
			func(int) int { return groundCap })
		return true
	}
	return false
}

// slide relaxes a pair of columns by one unit toward the lower one.
func slide(h []int, x int) {
	switch d := h[x] - h[x+1]; {
	case d > slideLimit:
		h[x]--
		h[x+1]++
	case d < -slideLimit:
		h[x]++
		h[x+1]--
	}
}

func (s *Snowfall) settle() {
	w := len(s.ground)
	for range slidePasses {
		for x := 0; x < w-1; x++ {
			slide(s.ground, x)
		}
		for x := 0; x < w-1; x++ {
			left, right := s.surfTop[x] < s.h, s.surfTop[x+1] < s.h
			if left && right {
				slide(s.onRegion, x)
				s.onRegion[x] = min(s.onRegion[x], s.cap[x])
				s.onRegion[x+1] = min(s.onRegion[x+1], s.cap[x+1])
				continue
			}
			edge := x
			switch {
			case left && !right:
			case right && !left:
				edge = x + 1
			default:
				continue
			}
			if s.onRegion[edge] <= s.cap[edge] {
				continue
			}
			// excess snow falls off the edge
			s.onRegion[edge]--
			if s.active < maxFlakes {
				f := &s.flakes[s.active]
				f.x = float64(edge)
				f.y = float64(s.surfTop[edge] - s.onRegion[edge])
				f.vy = s.rng.Range(40, 80)
				f.size = 1
				f.bright = 230
				s.active++
			}
		}
	}
}

func (s *Snowfall) Update(dt float64, w, h int, scene *region.Scene) {
	if s.watch.changed(scene, w, h) {
		s.rebuild(w, h, scene)
	}
	s.time += dt
	fw := float64(w)
	wind := math.Sin(s.time*2*math.Pi/windPeriod) * windAmplitude

	for i := 0; i < s.active; {
		f := &s.flakes[i]
		f.x += wind * dt
		f.y += f.vy * dt
		if fw > 0 {
			f.x = math.Mod(math.Mod(f.x, fw)+fw, fw)
		}
		if s.land(f) {
			s.active--
			s.flakes[i], s.flakes[s.active] = s.flakes[s.active], s.flakes[i]
			continue
		}
		i++
	}

	s.settle()

	if s.active < targetFlakes {
		s.spawn += flakeSpawn * dt
		for s.spawn >= 1 && s.active < maxFlakes {
			s.spawnFlake(w)
			s.spawn--
		}
	}
}

func (s *Snowfall) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	for row := 0; row < h; row++ {
		t := float64(row) / float64(h)
		buf.HLine(0, w-1, row, uint8(5+t*15), uint8(8+t*12), uint8(20+t*10))
	}

	for x := 0; x < min(w, len(s.ground)); x++ {
		if sh := s.ground[x]; sh > 0 {
			tint := uint8(230 + x*7%26)
			rough := (x*17+31)%3 - 1
			buf.VLine(x, max(h-1-sh+rough, 0), h-1, tint, tint, tint)
		}
	}
	for x := 0; x < min(w, len(s.onRegion)); x++ {
		surf, sh := s.surfTop[x], s.onRegion[x]
		if sh > 0 && surf < h {
			tint := uint8(230 + x*13%26)
			rough := (x*23+7)%3 - 1
			buf.VLine(x, max(surf-sh+rough, 0), surf-1, tint, tint, tint)
		}
	}

	for i := 0; i < s.active; i++ {
		f := &s.flakes[i]
		px, py, b := int(f.x), int(f.y), f.bright
		switch f.size {
		case 1:
			buf.SetPixel(px, py, b, b, b)
		case 2:
			buf.FillRect(px, py, 2, 2, b, b, b)
		case 3:
			buf.SetPixel(px, py, b, b, b)
			buf.SetPixel(px-1, py, b, b, b)
			buf.SetPixel(px+1, py, b, b, b)
			buf.SetPixel(px, py-1, b, b, b)
			buf.SetPixel(px, py+1, b, b, b)
		default:
			buf.FillCircle(px, py, 2, b, b, b)
		}
	}
}

func (s *Snowfall) RegionColor() raster.RGB { return raster.RGB{} }
func (s *Snowfall) Name() string            { return "Snowfall" }

func fillInt(s []int, v int) []int {
	for i := range s {
		s[i] = v
	}
	return s
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
