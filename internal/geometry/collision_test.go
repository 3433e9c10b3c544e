package geometry

import (
	"math"
	"testing"
)

var square = [][2]float64{{200, 200}, {440, 200}, {440, 280}, {200, 280}}

var triangle = [][2]float64{{100, 100}, {300, 120}, {160, 260}}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		verts  [][2]float64
		inside bool
	}{
		{"square centroid", 320, 240, square, true},
		{"triangle centroid", 186.6, 160, triangle, true},
		{"left of bounds", 199, 240, square, false},
		{"below bounds", 320, 281, square, false},
		{"far away", -1e6, 1e6, square, false},
		{"two vertices", 0, 0, [][2]float64{{-1, -1}, {1, 1}}, false},
		{"empty", 0, 0, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.x, tt.y, tt.verts); got != tt.inside {
				t.Errorf("PointInPolygon(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.inside)
			}
		})
	}
}

func TestEscapeVectorPointsOutward(t *testing.T) {
	for _, poly := range [][][2]float64{square, triangle} {
		cx, cy := Centroid(poly)
		for _, p := range [][2]float64{{cx, cy}, {cx + 5, cy - 3}, {cx - 10, cy + 1}} {
			if !PointInPolygon(p[0], p[1], poly) {
				continue
			}
			c, ok := EscapeVector(p[0], p[1], poly)
			if !ok {
				t.Fatalf("EscapeVector(%v) reported no result", p)
			}
			if l := math.Hypot(c.NX, c.NY); math.Abs(l-1) > 1e-6 {
				t.Errorf("normal length = %v, want 1", l)
			}
			if dot := c.NX*(cx-p[0]) + c.NY*(cy-p[1]); dot > 1e-9 {
				t.Errorf("normal %v,%v points toward centroid (dot %v)", c.NX, c.NY, dot)
			}
		}
	}
}

func TestEscapeVectorNearestEdge(t *testing.T) {
	// 10 px below the top edge and far from any corner
	c, ok := EscapeVector(320, 210, square)
	if !ok {
		t.Fatal("expected a result")
	}
	if math.Abs(c.NX) > 1e-9 || math.Abs(c.NY+1) > 1e-9 {
		t.Errorf("normal = (%v, %v), want (0, -1)", c.NX, c.NY)
	}
	if math.Abs(c.Depth-10) > 1e-9 {
		t.Errorf("depth = %v, want 10", c.Depth)
	}
}

func TestEscapeVectorCornerBisector(t *testing.T) {
	// 1 px inside the top-left corner of the square on both axes
	c, ok := EscapeVector(201, 201, square)
	if !ok {
		t.Fatal("expected a result")
	}
	want := -1 / math.Sqrt2
	if math.Abs(c.NX-want) > 1e-9 || math.Abs(c.NY-want) > 1e-9 {
		t.Errorf("normal = (%v, %v), want (%v, %v)", c.NX, c.NY, want, want)
	}
}

func TestRectPolygonCollision(t *testing.T) {
	tests := []struct {
		name       string
		rx, ry     float64
		rw, rh     float64
		wantHit    bool
		wantNormal [2]float64
	}{
		{"rect contains polygon", 100, 100, 500, 300, true, [2]float64{}},
		{"polygon contains rect", 300, 220, 20, 20, true, [2]float64{}},
		{"clear of polygon", 0, 0, 50, 50, false, [2]float64{}},
		{"overlaps left edge", 180, 230, 40, 20, true, [2]float64{-1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := RectPolygonCollision(tt.rx, tt.ry, tt.rw, tt.rh, square)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if c.Depth <= 0 {
				t.Errorf("depth = %v, want > 0", c.Depth)
			}
			if tt.wantNormal != ([2]float64{}) {
				if math.Abs(c.NX-tt.wantNormal[0]) > 1e-9 || math.Abs(c.NY-tt.wantNormal[1]) > 1e-9 {
					t.Errorf("normal = (%v, %v), want %v", c.NX, c.NY, tt.wantNormal)
				}
			}
		})
	}
}

func TestRectPolygonCollisionDegenerate(t *testing.T) {
	if _, ok := RectPolygonCollision(0, 0, 10, 10, [][2]float64{{0, 0}, {5, 5}}); ok {
		t.Error("two-vertex polygon should never collide")
	}
}

func TestCirclePolygonCollision(t *testing.T) {
	t.Run("center inside", func(t *testing.T) {
		c, ok := CirclePolygonCollision(320, 210, 5, square)
		if !ok {
			t.Fatal("expected collision")
		}
		if math.Abs(c.Depth-15) > 1e-9 {
			t.Errorf("depth = %v, want 15", c.Depth)
		}
	})
	t.Run("touching from above", func(t *testing.T) {
		c, ok := CirclePolygonCollision(320, 195, 10, square)
		if !ok {
			t.Fatal("expected collision")
		}
		if math.Abs(c.NY+1) > 1e-9 || math.Abs(c.Depth-5) > 1e-9 {
			t.Errorf("got %+v, want normal (0,-1) depth 5", c)
		}
	})
	t.Run("clear", func(t *testing.T) {
		if _, ok := CirclePolygonCollision(320, 150, 10, square); ok {
			t.Error("unexpected collision")
		}
	})
}

func TestCircleCircleSymmetry(t *testing.T) {
	a, okA := CircleCircleCollision(0, 0, 10, 12, 5, 8)
	b, okB := CircleCircleCollision(12, 5, 8, 0, 0, 10)
	if !okA || !okB {
		t.Fatal("expected both orders to collide")
	}
	if math.Abs(a.NX+b.NX) > 1e-12 || math.Abs(a.NY+b.NY) > 1e-12 {
		t.Errorf("normals do not negate: %+v vs %+v", a, b)
	}
	if math.Abs(a.Depth-b.Depth) > 1e-12 {
		t.Errorf("depths differ: %v vs %v", a.Depth, b.Depth)
	}
	if _, ok := CircleCircleCollision(0, 0, 5, 0, 0, 5); ok {
		t.Error("concentric circles should report no normal")
	}
}

func TestReflectLaw(t *testing.T) {
	vectors := [][2]float64{{3, -4}, {120, 80}, {-7, 0.5}}
	normals := [][2]float64{{0, 1}, {1, 0}, {1 / math.Sqrt2, -1 / math.Sqrt2}}
	for _, v := range vectors {
		for _, n := range normals {
			rx, ry := Reflect(v[0], v[1], n[0], n[1])
			vn := v[0]*n[0] + v[1]*n[1]
			rn := rx*n[0] + ry*n[1]
			if math.Abs(rn+vn) > 1e-9 {
				t.Errorf("reflect(%v, %v)·n = %v, want %v", v, n, rn, -vn)
			}
			// tangential component is preserved
			tx, ty := -n[1], n[0]
			if math.Abs((rx*tx+ry*ty)-(v[0]*tx+v[1]*ty)) > 1e-9 {
				t.Errorf("reflect(%v, %v) changed the tangential component", v, n)
			}
		}
	}
}

func TestSegmentIntersection(t *testing.T) {
	x, y, tt, ok := SegmentIntersection(0, 0, 10, 10, 0, 10, 10, 0)
	if !ok || math.Abs(x-5) > 1e-9 || math.Abs(y-5) > 1e-9 || math.Abs(tt-0.5) > 1e-9 {
		t.Errorf("got (%v, %v, %v, %v), want (5, 5, 0.5, true)", x, y, tt, ok)
	}
	if _, _, _, ok := SegmentIntersection(0, 0, 10, 0, 0, 1, 10, 1); ok {
		t.Error("parallel segments should not intersect")
	}
	if _, _, _, ok := SegmentIntersection(0, 0, 1, 1, 5, 0, 6, -3); ok {
		t.Error("disjoint segments should not intersect")
	}
}

func TestNormalize(t *testing.T) {
	if x, y := Normalize(0, 0.00001); x != 0 || y != 0 {
		t.Errorf("Normalize(tiny) = (%v, %v), want (0, 0)", x, y)
	}
	x, y := Normalize(3, 4)
	if math.Abs(x-0.6) > 1e-12 || math.Abs(y-0.8) > 1e-12 {
		t.Errorf("Normalize(3, 4) = (%v, %v)", x, y)
	}
	if Length(3, 4) != 5 || DistanceSquared(1, 1, 4, 5) != 25 {
		t.Error("Length or DistanceSquared wrong")
	}
}
