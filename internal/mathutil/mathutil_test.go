package mathutil

import (
	"math"
	"testing"
)

func TestVec3Rotations(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"x quarter", Vec3{0, 1, 0}.RotateX(math.Pi / 2), Vec3{0, 0, 1}},
		{"y quarter", Vec3{0, 0, 1}.RotateY(math.Pi / 2), Vec3{1, 0, 0}},
		{"z quarter", Vec3{1, 0, 0}.RotateZ(math.Pi / 2), Vec3{0, 1, 0}},
		{"xyz zero", Vec3{1, 2, 3}.RotateXYZ(0, 0, 0), Vec3{1, 2, 3}},
		{"xyz order", Vec3{0, 1, 0}.RotateXYZ(math.Pi/2, math.Pi/2, 0), Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEq(tt.want, 1e-9) {
				t.Fatalf("got %v want %v", tt.got, tt.want)
			}
		})
	}
}

func TestVec3RotateMatchesMatrix(t *testing.T) {
	v := Vec3{0.3, -1.2, 2.5}
	if got, want := v.RotateX(0.7), RotX(0.7).MulVec3(v); !got.ApproxEq(want, 1e-9) {
		t.Fatalf("RotateX %v, RotX %v", got, want)
	}
	if got, want := v.RotateZ(-1.1), RotZ(-1.1).MulVec3(v); !got.ApproxEq(want, 1e-9) {
		t.Fatalf("RotateZ %v, RotZ %v", got, want)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Fatalf("Normalize(0) = %v", got)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Fatalf("Vec2 Normalize(0) = %v", got)
	}
	if l := (Vec2{3, 4}).Normalize().Len(); math.Abs(l-1) > 1e-12 {
		t.Fatalf("len %v", l)
	}
}

func TestLerpUnclamped(t *testing.T) {
	a, b := Vec3{0, 0, 0}, Vec3{10, 20, 30}
	if got := Lerp(a, b, 0.5); !got.ApproxEq(Vec3{5, 10, 15}, 1e-12) {
		t.Fatalf("mid %v", got)
	}
	if got := Lerp(a, b, 2); !got.ApproxEq(Vec3{20, 40, 60}, 1e-12) {
		t.Fatalf("extrapolate %v", got)
	}
}

func TestProject(t *testing.T) {
	if _, _, ok := Project(Vec3{1, 1, 0}, 256, 320, 240); ok {
		t.Fatal("z=0 projected")
	}
	if _, _, ok := Project(Vec3{1, 1, -5}, 256, 320, 240); ok {
		t.Fatal("z<0 projected")
	}
	x, y, ok := Project(Vec3{10, -20, 256}, 256, 320, 240)
	if !ok || x != 330 || y != 220 {
		t.Fatalf("got (%v,%v,%v)", x, y, ok)
	}

	_, _, p, ok := ProjectWithDepth(Vec3{0, 0, 50}, 256, 0, 0, 100)
	if !ok || math.Abs(p-0.5) > 1e-12 {
		t.Fatalf("proximity %v", p)
	}
	_, _, p, _ = ProjectWithDepth(Vec3{0, 0, 500}, 256, 0, 0, 100)
	if p != 0 {
		t.Fatalf("far proximity %v", p)
	}
}

func TestCube(t *testing.T) {
	m := Cube(2)
	if len(m.Vertices) != 8 || len(m.Faces) != 12 {
		t.Fatalf("cube %d verts %d faces", len(m.Vertices), len(m.Faces))
	}
	// every face normal points away from the origin
	for i := range m.Faces {
		n := m.FaceNormal(i)
		c := m.FaceCenter(i)
		if n.Dot(c) <= 0 {
			t.Fatalf("face %d normal %v faces inward (center %v)", i, n, c)
		}
	}
}

func TestSphere(t *testing.T) {
	for subdiv := 0; subdiv <= 3; subdiv++ {
		m := Sphere(5, subdiv)
		wantFaces := 20
		for i := 0; i < subdiv; i++ {
			wantFaces *= 4
		}
		if len(m.Faces) != wantFaces {
			t.Fatalf("subdiv %d: %d faces, want %d", subdiv, len(m.Faces), wantFaces)
		}
		// Euler: V − E + F = 2 with E = 3F/2
		if wantV := 2 + wantFaces/2; len(m.Vertices) != wantV {
			t.Fatalf("subdiv %d: %d verts, want %d", subdiv, len(m.Vertices), wantV)
		}
		for _, v := range m.Vertices {
			if math.Abs(v.Len()-5) > 1e-9 {
				t.Fatalf("vertex %v off sphere", v)
			}
		}
	}
}

func TestMeshTransforms(t *testing.T) {
	m := Cube(2)
	m.Scale(2)
	m.Translate(Vec3{0, 0, 10})
	if got := m.Vertices[6]; !got.ApproxEq(Vec3{2, 2, 12}, 1e-12) {
		t.Fatalf("vertex 6 %v", got)
	}
	m.Rotate(0, 0, math.Pi)
	if got := m.Vertices[6]; !got.ApproxEq(Vec3{-2, -2, 12}, 1e-9) {
		t.Fatalf("rotated vertex 6 %v", got)
	}

	tr := FromMat3Translation(Mat3Identity(), Vec3{1, 2, 3})
	out := Cube(2).Transform(tr, nil)
	if !out[0].ApproxEq(Vec3{0, 1, 2}, 1e-12) {
		t.Fatalf("transformed %v", out[0])
	}
}

func TestAngles(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{0.1, -0.1, 0.2},
		{math.Pi - 0.1, -math.Pi + 0.1, 0.2},
		{0, 3 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := AngleDist(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngleDist(%v,%v) = %v want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if w := WrapAngle(Tau + 0.5); math.Abs(w-0.5) > 1e-12 {
		t.Errorf("WrapAngle %v", w)
	}
}

func TestQuatMatchesAxisRotation(t *testing.T) {
	q := AxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	got := QuatToMat3(q).MulVec3(Vec3{1, 0, 0})
	if !got.ApproxEq(Vec3{0, 1, 0}, 1e-9) {
		t.Fatalf("got %v", got)
	}
	id := q.Mul(AxisAngle(Vec3{0, 0, 1}, -math.Pi/2)).Normalize()
	if math.Abs(id[3]-1) > 1e-9 {
		t.Fatalf("q·q⁻¹ = %v", id)
	}
}
