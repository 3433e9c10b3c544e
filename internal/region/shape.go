// Package region models the user-defined wall regions: polygons and circles
// grouped into a named Scene that is persisted as JSON.
package region

import "math"

// MinCircleRadius is the smallest radius a circle region may have.
const MinCircleRadius = 10.0

// Point is a 2D screen position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to o.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Shape is a region outline. It is implemented by *Polygon and *Circle.
type Shape interface {
	Contains(x, y float64) bool
	// Bounds returns (minX, minY, maxX, maxY); ok is false for an empty shape.
	Bounds() (minX, minY, maxX, maxY float64, ok bool)
	Centroid() (Point, bool)
	Kind() string
	Clone() Shape
}

const (
	KindPolygon = "polygon"
	KindCircle  = "circle"
)

// Polygon is an ordered vertex list, implicitly closed.
type Polygon struct {
	Vertices []Point `json:"vertices"`
}

// NewPolygon builds a polygon from (x, y) pairs.
func NewPolygon(pts ...[2]float64) *Polygon {
	p := &Polygon{Vertices: make([]Point, 0, len(pts))}
	for _, v := range pts {
		p.AddVertex(v[0], v[1])
	}
	return p
}

func (p *Polygon) AddVertex(x, y float64) {
	p.Vertices = append(p.Vertices, Point{X: x, Y: y})
}

// IsClosed reports whether the polygon has enough vertices to enclose area.
func (p *Polygon) IsClosed() bool { return len(p.Vertices) >= 3 }

// Contains is a ray-casting point-in-polygon test.
func (p *Polygon) Contains(x, y float64) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p.Vertices[i], p.Vertices[j]
		if (vi.Y > y) != (vj.Y > y) && x < (vj.X-vi.X)*(y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func (p *Polygon) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(p.Vertices) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	for _, v := range p.Vertices {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY, true
}

// Centroid is the arithmetic mean of the vertices.
func (p *Polygon) Centroid() (Point, bool) {
	if len(p.Vertices) == 0 {
		return Point{}, false
	}
	var sx, sy float64
	for _, v := range p.Vertices {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(p.Vertices))
	return Point{X: sx / n, Y: sy / n}, true
}

// Edges calls fn for every edge, including the closing one.
func (p *Polygon) Edges(fn func(a, b Point)) {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		fn(p.Vertices[i], p.Vertices[(i+1)%n])
	}
}

// AsTuples appends the vertices as (x, y) pairs to dst, the form the
// rasterizer and collision code consume.
func (p *Polygon) AsTuples(dst [][2]float64) [][2]float64 {
	for _, v := range p.Vertices {
		dst = append(dst, [2]float64{v.X, v.Y})
	}
	return dst
}

func (p *Polygon) Kind() string { return KindPolygon }

func (p *Polygon) Clone() Shape {
	return &Polygon{Vertices: append([]Point(nil), p.Vertices...)}
}

// Circle is a center and a positive radius.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

func NewCircle(x, y, r float64) *Circle {
	return &Circle{Center: Point{X: x, Y: y}, Radius: r}
}

// Contains reports whether (x, y) is within the radius, edge included.
func (c *Circle) Contains(x, y float64) bool {
	dx, dy := x-c.Center.X, y-c.Center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

func (c *Circle) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	return c.Center.X - c.Radius, c.Center.Y - c.Radius, c.Center.X + c.Radius, c.Center.Y + c.Radius, true
}

func (c *Circle) Centroid() (Point, bool) { return c.Center, true }

func (c *Circle) Kind() string { return KindCircle }

func (c *Circle) Clone() Shape {
	cp := *c
	return &cp
}
