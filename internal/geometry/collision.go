// Package geometry holds the 2D collision primitives used by the bouncing and
// physics effects. Polygons are vertex lists of (x, y) pairs in screen space.
package geometry

import "math"

const (
	// CornerThreshold is the distance along an edge, from either endpoint,
	// inside which the escape normal switches to the corner bisector.
	CornerThreshold = 3.0

	// edgeCornerRadius is the same rule for edge-edge intersections.
	edgeCornerRadius = 5.0

	normalizeEpsilon = 1e-4
	parallelEpsilon  = 1e-4
	degenerateEdge   = 1e-3
)

// Collision is an outward unit normal and a penetration depth.
type Collision struct {
	NX, NY float64
	Depth  float64
}

// PointInPolygon reports whether (px, py) is inside verts by ray casting.
// Horizontal edges are skipped; fewer than three vertices is never inside.
func PointInPolygon(px, py float64, verts [][2]float64) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := verts[i][0], verts[i][1]
		xj, yj := verts[j][0], verts[j][1]
		dy := yj - yi
		if math.Abs(dy) > 1e-12 && (yi > py) != (yj > py) {
			if px < (xj-xi)*(py-yi)/dy+xi {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Centroid returns the arithmetic mean of verts.
func Centroid(verts [][2]float64) (float64, float64) {
	if len(verts) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, v := range verts {
		sx += v[0]
		sy += v[1]
	}
	n := float64(len(verts))
	return sx / n, sy / n
}

// cornerBisector returns the outward bisector at vertex vi, or ok=false when an
// adjacent edge is degenerate or the edges are antiparallel.
func cornerBisector(verts [][2]float64, vi int) (nx, ny float64, ok bool) {
	n := len(verts)
	prev := verts[(vi+n-1)%n]
	next := verts[(vi+1)%n]
	v := verts[vi]

	e1x, e1y := prev[0]-v[0], prev[1]-v[1]
	e2x, e2y := next[0]-v[0], next[1]-v[1]
	l1 := math.Hypot(e1x, e1y)
	l2 := math.Hypot(e2x, e2y)
	if l1 <= degenerateEdge || l2 <= degenerateEdge {
		return 0, 0, false
	}
	e1x, e1y = e1x/l1, e1y/l1
	e2x, e2y = e2x/l2, e2y/l2

	// the sum points into the corner
	bx, by := -(e1x + e2x), -(e1y + e2y)
	bl := math.Hypot(bx, by)
	if bl <= degenerateEdge {
		// straight angle, use the edge perpendicular
		return -e1y, e1x, true
	}
	return bx / bl, by / bl, true
}

// orientOutward flips (nx, ny) so it does not point from (px, py) toward (cx, cy).
func orientOutward(nx, ny, px, py, cx, cy float64) (float64, float64) {
	if nx*(cx-px)+ny*(cy-py) > 0 {
		return -nx, -ny
	}
	return nx, ny
}

// EscapeVector returns the outward unit normal at the nearest edge and the
// distance to it for a point inside verts. Near a vertex the normal is the
// corner bisector so bodies grazing a sharp corner rotate smoothly instead of
// flipping between the two edge normals.
func EscapeVector(px, py float64, verts [][2]float64) (Collision, bool) {
	n := len(verts)
	if n < 3 {
		return Collision{}, false
	}
	cx, cy := Centroid(verts)

	best := math.MaxFloat64
	var bestX, bestY, bestT, bestLen float64
	bestEdge := -1
	for i := 0; i < n; i++ {
		x1, y1 := verts[i][0], verts[i][1]
		x2, y2 := verts[(i+1)%n][0], verts[(i+1)%n][1]
		ex, ey := x2-x1, y2-y1
		l := math.Hypot(ex, ey)
		if l < degenerateEdge {
			continue
		}
		dx, dy := ex/l, ey/l
		t := math.Max(0, math.Min(l, (px-x1)*dx+(py-y1)*dy))
		qx, qy := x1+dx*t, y1+dy*t
		d := math.Hypot(px-qx, py-qy)
		if d < best {
			best = d
			bestX, bestY = qx, qy
			bestEdge = i
			bestT = t
			bestLen = l
		}
	}
	if bestEdge < 0 {
		return Collision{}, false
	}

	pointNormal := func() (float64, float64) {
		dx, dy := px-bestX, py-bestY
		l := math.Hypot(dx, dy)
		if l > degenerateEdge {
			return dx / l, dy / l
		}
		return 1, 0
	}

	var nx, ny float64
	nearStart := bestT < CornerThreshold
	nearEnd := bestT > bestLen-CornerThreshold
	if nearStart || nearEnd {
		vi := bestEdge
		if !nearStart {
			vi = (bestEdge + 1) % n
		}
		var ok bool
		if nx, ny, ok = cornerBisector(verts, vi); !ok {
			nx, ny = pointNormal()
		}
	} else {
		nx, ny = pointNormal()
	}
	nx, ny = orientOutward(nx, ny, px, py, cx, cy)
	return Collision{NX: nx, NY: ny, Depth: best}, true
}

// SegmentIntersection returns the intersection point of segments a and b and the
// parameter t along a. Parallel segments never intersect.
func SegmentIntersection(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 float64) (x, y, t float64, ok bool) {
	dx1, dy1 := ax2-ax1, ay2-ay1
	dx2, dy2 := bx2-bx1, by2-by1
	cross := dx1*dy2 - dy1*dx2
	if math.Abs(cross) < parallelEpsilon {
		return 0, 0, 0, false
	}
	dx3, dy3 := bx1-ax1, by1-ay1
	t = (dx3*dy2 - dy3*dx2) / cross
	u := (dx3*dy1 - dy3*dx1) / cross
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	return ax1 + t*dx1, ay1 + t*dy1, t, true
}

// RectPolygonCollision tests the axis-aligned rectangle (rx, ry, rw, rh) against
// verts. It tries, in order: a rectangle corner inside the polygon, a polygon
// vertex inside the rectangle, and the nearest edge-edge crossing.
func RectPolygonCollision(rx, ry, rw, rh float64, verts [][2]float64) (Collision, bool) {
	n := len(verts)
	if n < 3 {
		return Collision{}, false
	}
	corners := [4][2]float64{{rx, ry}, {rx + rw, ry}, {rx + rw, ry + rh}, {rx, ry + rh}}

	for _, c := range corners {
		if PointInPolygon(c[0], c[1], verts) {
			return EscapeVector(c[0], c[1], verts)
		}
	}

	for _, v := range verts {
		vx, vy := v[0], v[1]
		if vx < rx || vx > rx+rw || vy < ry || vy > ry+rh {
			continue
		}
		toLeft := vx - rx
		toRight := rx + rw - vx
		toTop := vy - ry
		toBottom := ry + rh - vy
		m := math.Min(math.Min(toLeft, toRight), math.Min(toTop, toBottom))
		switch m {
		case toLeft:
			return Collision{NX: -1, Depth: m}, true
		case toRight:
			return Collision{NX: 1, Depth: m}, true
		case toTop:
			return Collision{NY: -1, Depth: m}, true
		default:
			return Collision{NY: 1, Depth: m}, true
		}
	}

	cx, cy := Centroid(verts)
	rcx, rcy := rx+rw/2, ry+rh/2
	found := false
	bestDist := math.MaxFloat64
	var bnx, bny float64
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		for k := 0; k < n; k++ {
			p1, p2 := verts[k], verts[(k+1)%n]
			ix, iy, _, ok := SegmentIntersection(a[0], a[1], b[0], b[1], p1[0], p1[1], p2[0], p2[1])
			if !ok {
				continue
			}
			edx, edy := p2[0]-p1[0], p2[1]-p1[1]
			el := math.Hypot(edx, edy)
			if el < degenerateEdge {
				continue
			}
			nx, ny := -edy/el, edx/el

			toStart := math.Hypot(ix-p1[0], iy-p1[1])
			toEnd := math.Hypot(ix-p2[0], iy-p2[1])
			if toStart < edgeCornerRadius || toEnd < edgeCornerRadius {
				vi := k
				if toStart >= toEnd {
					vi = (k + 1) % n
				}
				if bx, by, ok := cornerBisector(verts, vi); ok {
					nx, ny = bx, by
				}
			}
			nx, ny = orientOutward(nx, ny, ix, iy, cx, cy)

			d := math.Hypot(ix-rcx, iy-rcy)
			if !found || d < bestDist {
				found = true
				bestDist = d
				bnx, bny = nx, ny
			}
		}
	}
	if !found {
		return Collision{}, false
	}
	pen := rh / 2
	if math.Abs(bnx) > math.Abs(bny) {
		pen = rw / 2
	}
	return Collision{NX: bnx, NY: bny, Depth: pen * 0.5}, true
}

// CirclePolygonCollision returns the normal from the polygon toward the circle
// center and the exact overlap depth.
func CirclePolygonCollision(cx, cy, radius float64, verts [][2]float64) (Collision, bool) {
	n := len(verts)
	if n < 3 {
		return Collision{}, false
	}
	if PointInPolygon(cx, cy, verts) {
		if c, ok := EscapeVector(cx, cy, verts); ok {
			c.Depth += radius
			return c, true
		}
	}

	best := math.MaxFloat64
	var bnx, bny float64
	for i := 0; i < n; i++ {
		x1, y1 := verts[i][0], verts[i][1]
		ex, ey := verts[(i+1)%n][0]-x1, verts[(i+1)%n][1]-y1
		lsq := ex*ex + ey*ey
		if lsq < degenerateEdge {
			continue
		}
		t := math.Max(0, math.Min(1, ((cx-x1)*ex+(cy-y1)*ey)/lsq))
		dx, dy := cx-(x1+t*ex), cy-(y1+t*ey)
		d := math.Hypot(dx, dy)
		if d < best {
			best = d
			if d > degenerateEdge {
				bnx, bny = dx/d, dy/d
			}
		}
	}
	if best < radius {
		return Collision{NX: bnx, NY: bny, Depth: radius - best}, true
	}
	return Collision{}, false
}

// CircleCircleCollision returns the normal from circle 2 toward circle 1 and
// the overlap. Concentric circles report no collision.
func CircleCircleCollision(cx1, cy1, r1, cx2, cy2, r2 float64) (Collision, bool) {
	dx, dy := cx1-cx2, cy1-cy2
	d := math.Hypot(dx, dy)
	if d < r1+r2 && d > degenerateEdge {
		return Collision{NX: dx / d, NY: dy / d, Depth: r1 + r2 - d}, true
	}
	return Collision{}, false
}

// Reflect mirrors v about the unit normal n: v − 2(v·n)n.
func Reflect(vx, vy, nx, ny float64) (float64, float64) {
	d := vx*nx + vy*ny
	return vx - 2*d*nx, vy - 2*d*ny
}

// Normalize returns the unit vector, or (0, 0) for near-zero input.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l > normalizeEpsilon {
		return x / l, y / l
	}
	return 0, 0
}

// Length returns the length of (x, y).
func Length(x, y float64) float64 { return math.Hypot(x, y) }

// DistanceSquared returns the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}
