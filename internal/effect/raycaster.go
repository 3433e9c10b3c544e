package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/texture"
)

// WallTexture is the resolver name checked for a raycaster wall override.
const WallTexture = "wall"

const (
	mazeSize      = 16
	maxRaySteps   = 64
	turnTrigger   = 1.8 // forward clearance that forces a turn
	walkSpeed     = 1.5 // cells per second
	turnRate      = 3.0 // radians per second
	wallMargin    = 0.25
	fogDistance   = 10.0
	minimapCell   = 6
	minimapMargin = 4
)

type minimapRay struct {
	x, y, angle, dist float64
	c                 raster.RGB
}

// Raycaster walks a generated maze, rendering it one DDA ray per column with
// a minimap of the sensing rays that steer it.
type Raycaster struct {
	time    float64
	maze    []bool // true is wall
	px, py  float64
	heading float64
	target  float64
	turning bool
	wall    *texture.Texture
	rng     *noise.Rng
	debug   []minimapRay
}

// NewRaycaster uses the resolver's "wall" texture when it has one and the
// procedural brick otherwise. res may be nil.
func NewRaycaster(res texture.Resolver) *Raycaster {
	rng := noise.NewRng(1337)
	maze := generateMaze(rng)
	sx, sy := openestCell(maze)
	heading := longestCorridor(maze, sx, sy)

	var wall *texture.Texture
	if res != nil {
		wall = res.Resolve(WallTexture)
	}
	if wall != nil {
		wall = texture.ToPow2(wall)
	} else {
		wall = texture.RaycasterBrick()
	}
	return &Raycaster{
		maze:    maze,
		px:      float64(sx) + 0.5,
		py:      float64(sy) + 0.5,
		heading: heading,
		target:  heading,
		wall:    wall,
		rng:     rng,
	}
}

// generateMaze carves a perfect maze with an iterative recursive backtracker
// over the 7×7 odd cells of the grid.
func generateMaze(rng *noise.Rng) []bool {
	grid := make([]bool, mazeSize*mazeSize)
	for i := range grid {
		grid[i] = true
	}
	const cells = (mazeSize - 1) / 2
	visited := make([]bool, cells*cells)
	visited[0] = true
	grid[1*mazeSize+1] = false

	type cell struct{ x, y int }
	stack := []cell{{0, 0}}
	var next []cell
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		next = next[:0]
		if c.x > 0 && !visited[c.y*cells+c.x-1] {
			next = append(next, cell{c.x - 1, c.y})
		}
		if c.x+1 < cells && !visited[c.y*cells+c.x+1] {
			next = append(next, cell{c.x + 1, c.y})
		}
		if c.y > 0 && !visited[(c.y-1)*cells+c.x] {
			next = append(next, cell{c.x, c.y - 1})
		}
		if c.y+1 < cells && !visited[(c.y+1)*cells+c.x] {
			next = append(next, cell{c.x, c.y + 1})
		}
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := next[int(rng.Uint32()%uint32(len(next)))]
		grid[(c.y+n.y+1)*mazeSize+c.x+n.x+1] = false
		grid[(n.y*2+1)*mazeSize+n.x*2+1] = false
		visited[n.y*cells+n.x] = true
		stack = append(stack, n)
	}
	return grid
}

// openestCell returns the open interior cell with the most open neighbours.
func openestCell(maze []bool) (int, int) {
	bx, by, best := 1, 1, 0
	for y := 1; y < mazeSize-1; y++ {
		for x := 1; x < mazeSize-1; x++ {
			if maze[y*mazeSize+x] {
				continue
			}
			score := 0
			for _, i := range [4]int{y*mazeSize + x + 1, y*mazeSize + x - 1, (y+1)*mazeSize + x, (y-1)*mazeSize + x} {
				if !maze[i] {
					score++
				}
			}
			if score > best {
				bx, by, best = x, y, score
			}
		}
	}
	return bx, by
}

// longestCorridor returns the axis heading with the most open cells ahead.
func longestCorridor(maze []bool, cx, cy int) float64 {
	dirs := [4]struct {
		dx, dy int
		angle  float64
	}{{1, 0, 0}, {0, 1, math.Pi / 2}, {-1, 0, math.Pi}, {0, -1, -math.Pi / 2}}
	bestAngle, bestDist := 0.0, 0
	for _, d := range dirs {
		dist := 0
		for x, y := cx+d.dx, cy+d.dy; x >= 0 && y >= 0 && x < mazeSize && y < mazeSize && !maze[y*mazeSize+x]; x, y = x+d.dx, y+d.dy {
			dist++
		}
		if dist > bestDist {
			bestAngle, bestDist = d.angle, dist
		}
	}
	return bestAngle
}

func (rc *Raycaster) isWall(x, y int) bool {
	if x < 0 || y < 0 || x >= mazeSize || y >= mazeSize {
		return true
	}
	return rc.maze[y*mazeSize+x]
}

// rayHit is the result of one DDA march.
type rayHit struct {
	dist   float64 // along the ray
	mapX   int
	mapY   int
	nsFace bool // crossed a horizontal grid line
	hit    bool
}

func (rc *Raycaster) march(sx, sy, angle float64) rayHit {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	mx, my := int(sx), int(sy)
	deltaX, deltaY := math.MaxFloat64, math.MaxFloat64
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}
	stepX, sideX := 1, (float64(mx)+1-sx)*deltaX
	if dirX < 0 {
		stepX, sideX = -1, (sx-float64(mx))*deltaX
	}
	stepY, sideY := 1, (float64(my)+1-sy)*deltaY
	if dirY < 0 {
		stepY, sideY = -1, (sy-float64(my))*deltaY
	}

	for range maxRaySteps {
		ns := false
		if sideX < sideY {
			sideX += deltaX
			mx += stepX
		} else {
			sideY += deltaY
			my += stepY
			ns = true
		}
		if !rc.isWall(mx, my) {
			continue
		}
		var d float64
		if ns {
			d = (float64(my) - sy + float64(1-stepY)*0.5) / dirY
		} else {
			d = (float64(mx) - sx + float64(1-stepX)*0.5) / dirX
		}
		return rayHit{dist: d, mapX: mx, mapY: my, nsFace: ns, hit: true}
	}
	return rayHit{dist: math.MaxFloat64}
}

func (rc *Raycaster) sense(x, y, angle float64, c raster.RGB) float64 {
	d := rc.march(x, y, angle).dist
	rc.debug = append(rc.debug, minimapRay{x, y, angle, d, c})
	return d
}

func (rc *Raycaster) Update(dt float64, _, _ int, _ *region.Scene) {
	rc.time += dt
	if math.Abs(math.Remainder(rc.target-rc.heading, 2*math.Pi)) < 0.05 {
		rc.heading = rc.target
		rc.turning = false
	}

	rc.debug = rc.debug[:0]
	a := rc.heading
	fwd := rc.sense(rc.px, rc.py, a, rgb(0, 200, 0))
	left := rc.sense(rc.px, rc.py, a-math.Pi/2, rgb(200, 200, 0))
	right := rc.sense(rc.px, rc.py, a+math.Pi/2, rgb(200, 200, 0))
	left45 := rc.sense(rc.px, rc.py, a-math.Pi/4, rgb(150, 0, 150))
	right45 := rc.sense(rc.px, rc.py, a+math.Pi/4, rgb(150, 0, 150))

	// side openings just short of the wall ahead
	look := clampf(fwd-0.5, 0.1, 3)
	ax, ay := rc.px+math.Cos(a)*look, rc.py+math.Sin(a)*look
	aheadL := rc.sense(ax, ay, a-math.Pi/2, rgb(0, 200, 255))
	aheadR := rc.sense(ax, ay, a+math.Pi/2, rgb(0, 200, 255))

	if !rc.turning {
		switch {
		case fwd < turnTrigger:
			best, turn := 0.0, math.Pi
			switch {
			case aheadR > aheadL:
				best, turn = aheadR, math.Pi/2
			case aheadL > 0:
				best, turn = aheadL, -math.Pi/2
			}
			if left45 > best*0.8 && left45 > 2 {
				best, turn = left45, -math.Pi/2
			}
			if right45 > best*0.8 && right45 > 2 {
				best, turn = right45, math.Pi/2
			}
			if best < 0.8 {
				turn = math.Pi
			}
			rc.target = a + turn
			rc.turning = true
			rc.debug = append(rc.debug, minimapRay{rc.px, rc.py, rc.target, 3, rgb(255, 50, 50)})
		case fwd > 3 && rc.rng.Chance(0.005):
			// wander into a side passage now and then
			if left > 2.5 && rc.rng.Chance(0.5) {
				rc.target, rc.turning = a-math.Pi/2, true
			} else if right > 2.5 {
				rc.target, rc.turning = a+math.Pi/2, true
			}
		}
	}

	diff := math.Remainder(rc.target-rc.heading, 2*math.Pi)
	if step := turnRate * dt; math.Abs(diff) < step {
		rc.heading = rc.target
	} else {
		rc.heading += math.Copysign(step, diff)
	}

	if rc.march(rc.px, rc.py, rc.heading).dist <= 0.4 {
		return
	}
	speed := walkSpeed
	if rc.turning {
		speed *= 0.4
	}
	cos, sin := math.Cos(rc.heading), math.Sin(rc.heading)
	nx, ny := rc.px+cos*speed*dt, rc.py+sin*speed*dt
	if !rc.isWall(int(nx+math.Copysign(wallMargin, cos)), int(rc.py)) {
		rc.px = nx
	}
	if !rc.isWall(int(rc.px), int(ny+math.Copysign(wallMargin, sin))) {
		rc.py = ny
	}
}

func (rc *Raycaster) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	half := float64(h) / 2
	fov := math.Pi / 3
	pix := buf.Bytes()
	th := float64(rc.wall.H)

	for col := 0; col < w; col++ {
		off := (float64(col)/float64(w) - 0.5) * fov
		angle := rc.heading + off
		hit := rc.march(rc.px, rc.py, angle)

		// project onto the view direction so straight walls stay straight
		perp := hit.dist * math.Cos(off)
		wallH := float64(h) * 4
		if perp > 0.001 {
			wallH = math.Min(float64(h)/perp, wallH)
		}
		start := max(int(half-wallH/2), 0)
		end := min(int(half+wallH/2), h)

		var wx float64
		if hit.nsFace {
			wx = rc.px + hit.dist*math.Cos(angle)
		} else {
			wx = rc.py + hit.dist*math.Sin(angle)
		}
		wx -= math.Floor(wx)
		shade := 1.0
		if !hit.nsFace {
			shade = 0.7
		}
		fog := math.Max(1-math.Min(perp/fogDistance, 1), 0.05) * shade
		if !hit.hit {
			fog = 0
		}

		for row := 0; row < start; row++ {
			t := 1 - float64(row)/half
			i := (row*w + col) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, uint8(30*t), uint8(12*t), uint8(8*t)
		}
		for row := start; row < end; row++ {
			v := (float64(row) - half + wallH/2) / wallH
			r, g, b := rc.wall.Sample(wx, math.Floor(v*th)/th)
			i := (row*w + col) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, uint8(float64(b)*fog), uint8(float64(g)*fog), uint8(float64(r)*fog)
		}
		for row := end; row < h; row++ {
			c := uint8(20 * (float64(row) - half) / half)
			i := (row*w + col) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, c/3, c/2, c
		}
	}
	rc.drawMinimap(buf)
}

func (rc *Raycaster) drawMinimap(buf *raster.Buffer) {
	const o = minimapMargin
	for my := 0; my < mazeSize; my++ {
		for mx := 0; mx < mazeSize; mx++ {
			c := rgb(12, 12, 20)
			if rc.maze[my*mazeSize+mx] {
				c = rgb(50, 50, 70)
			}
			buf.FillRect(o+mx*minimapCell, o+my*minimapCell, minimapCell, minimapCell, c.R, c.G, c.B)
		}
	}
	toMap := func(x, y float64) (int, int) {
		return o + int(x*minimapCell), o + int(y*minimapCell)
	}
	for _, r := range rc.debug {
		d := math.Min(r.dist, 10)
		sx, sy := toMap(r.x, r.y)
		ex, ey := toMap(r.x+math.Cos(r.angle)*d, r.y+math.Sin(r.angle)*d)
		buf.Line(sx, sy, ex, ey, r.c.R, r.c.G, r.c.B)
	}
	px, py := toMap(rc.px, rc.py)
	buf.FillRect(px-1, py-1, 3, 3, 0, 255, 0)
	dx, dy := toMap(rc.px+math.Cos(rc.heading)*2.5, rc.py+math.Sin(rc.heading)*2.5)
	buf.Line(px, py, dx, dy, 255, 255, 255)
}

func (rc *Raycaster) RegionColor() raster.RGB { return raster.RGB{} }
func (rc *Raycaster) Name() string            { return "Raycaster Maze" }
