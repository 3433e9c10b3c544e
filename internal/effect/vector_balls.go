package effect

import (
	"math"

	"wallfacer/internal/mathutil"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	vballCount   = 12
	vballRadius  = 150.0
	vballSize    = 38.0
	vballCameraZ = 450.0
	vballMaxZ    = 900.0
	vballMorph   = 4.0 // seconds per shape
)

type screenBall struct {
	x, y, r, z float64
	zr         float64 // world radius along the view axis
}

// VectorBalls morphs twelve shaded spheres between an icosahedron, a
// cuboctahedron, a ring and a helix.
type VectorBalls struct {
	time     float64
	rot      mathutil.Vec3
	targets  [][]mathutil.Vec3
	current  int
	progress float64
	light    mathutil.Vec3
	balls    []screenBall
	zbuf     *raster.Buffer
}

func cuboctahedron(r float64) []mathutil.Vec3 {
	a := r / math.Sqrt2
	return []mathutil.Vec3{
		{a, a, 0}, {a, -a, 0}, {-a, a, 0}, {-a, -a, 0},
		{a, 0, a}, {a, 0, -a}, {-a, 0, a}, {-a, 0, -a},
		{0, a, a}, {0, a, -a}, {0, -a, a}, {0, -a, -a},
	}
}

func ringShape(r float64) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, vballCount)
	for i := range out {
		a := float64(i) * 2 * math.Pi / vballCount
		out[i] = mathutil.Vec3{r * math.Cos(a), 0, r * math.Sin(a)}
	}
	return out
}

// helixShape winds two full turns from bottom to top.
func helixShape(r float64) []mathutil.Vec3 {
	half := r * 1.2
	out := make([]mathutil.Vec3, vballCount)
	for i := range out {
		t := float64(i) / (vballCount - 1)
		a := t * 4 * math.Pi
		out[i] = mathutil.Vec3{r * 0.6 * math.Cos(a), -half + t*2*half, r * 0.6 * math.Sin(a)}
	}
	return out
}

func NewVectorBalls() *VectorBalls {
	ico := mathutil.Sphere(vballRadius, 0).Vertices
	return &VectorBalls{
		targets: [][]mathutil.Vec3{ico, cuboctahedron(vballRadius), ringShape(vballRadius), helixShape(vballRadius)},
		light:   mathutil.Vec3{-0.5, -0.7, -0.5}.Normalize(),
	}
}

func (vb *VectorBalls) Update(dt float64, _, _ int, _ *region.Scene) {
	vb.time += dt
	vb.rot[0] += 0.4 * dt
	vb.rot[1] += 0.7 * dt
	vb.progress += dt / vballMorph
	for vb.progress >= 1 {
		vb.progress--
		vb.current = (vb.current + 1) % len(vb.targets)
	}
}

func (vb *VectorBalls) Render(buf *raster.Buffer) {
	w, h := float64(buf.Width()), float64(buf.Height())
	cx, cy := w/2, h/2
	scale := math.Min(w, h) / 480
	fov := 400 * scale
	vb.zbuf = depthTarget(vb.zbuf, buf)

	t := (1 - math.Cos(math.Pi*vb.progress)) / 2
	src := vb.targets[vb.current]
	dst := vb.targets[(vb.current+1)%len(vb.targets)]

	orient := mathutil.QuatToMat3(mathutil.EulerToQuat(vb.rot[0], vb.rot[1], 0))
	vb.balls = vb.balls[:0]
	for i := range vballCount {
		p := orient.MulVec3(mathutil.Lerp(src[i], dst[i], t))
		p[2] += vballCameraZ
		sx, sy, near, ok := mathutil.ProjectWithDepth(p, fov, cx, cy, vballMaxZ)
		if !ok {
			continue
		}
		if r := vballSize * near * scale; r > 0.5 {
			vb.balls = append(vb.balls, screenBall{sx, sy, r, p[2], vballSize})
		}
	}
	// per pixel depth lets touching balls intersect instead of popping
	for _, b := range vb.balls {
		vb.shadeBall(vb.zbuf, b)
	}
	buf.Blit(vb.zbuf, 0, 0)
}

// shadeBall draws a sphere lit with diffuse, a tight specular and a hue
// keyed to the surface normal.
func (vb *VectorBalls) shadeBall(buf *raster.Buffer, b screenBall) {
	x0, x1 := max(int(b.x-b.r), 0), min(int(b.x+b.r), buf.Width()-1)
	y0, y1 := max(int(b.y-b.r), 0), min(int(b.y+b.r), buf.Height()-1)
	l := vb.light
	for py := y0; py <= y1; py++ {
		dy := float64(py) - b.y
		for px := x0; px <= x1; px++ {
			dx := float64(px) - b.x
			if dx*dx+dy*dy > b.r*b.r {
				continue
			}
			nx, ny := dx/b.r, dy/b.r
			nzSq := 1 - nx*nx - ny*ny
			if nzSq <= 0 {
				continue
			}
			n := mathutil.Vec3{nx, ny, -math.Sqrt(nzSq)}
			ndl := n.Dot(l)
			diffuse := math.Max(ndl, 0)
			// reflected light against a view along -Z
			refl := n.Scale(2 * ndl).Sub(l)
			spec := math.Pow(math.Max(-refl[2], 0), 32) * 255
			hue := math.Mod(math.Atan2(nx, ny)*180/math.Pi+vb.time*30+360, 360)
			env := palette.HSV(hue, 0.7, 0.9)
			k := 0.15 + diffuse
			buf.SetPixelDepth(px, py, b.z+n[2]*b.zr,
				raster.Clamp255(float64(env.R)*k+spec),
				raster.Clamp255(float64(env.G)*k+spec),
				raster.Clamp255(float64(env.B)*k+spec))
		}
	}
}

func (vb *VectorBalls) RegionColor() raster.RGB { return raster.RGB{} }
func (vb *VectorBalls) Name() string            { return "Vector Balls" }
