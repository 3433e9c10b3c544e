package raster

import (
	"bytes"
	"math"
	"testing"

	"wallfacer/internal/mathutil"
	"wallfacer/internal/region"
)

func TestNewClampsSize(t *testing.T) {
	b := New(0, -5)
	if b.Width() != 1 || b.Height() != 1 || len(b.Bytes()) != 4 {
		t.Errorf("New(0,-5) = %dx%d with %d bytes", b.Width(), b.Height(), len(b.Bytes()))
	}
	b = New(7, 3)
	if b.Stride() != 28 || len(b.Bytes()) != 4*7*3 {
		t.Errorf("stride %d, %d bytes", b.Stride(), len(b.Bytes()))
	}
}

func TestPixelByteOrder(t *testing.T) {
	b := New(4, 4)
	b.SetPixel(1, 2, 10, 20, 30)
	i := (2*4 + 1) * 4
	got := b.Bytes()[i : i+4]
	if !bytes.Equal(got, []byte{255, 30, 20, 10}) {
		t.Errorf("pixel bytes = %v, want [A B G R] = [255 30 20 10]", got)
	}
	r, g, bl, ok := b.Pixel(1, 2)
	if !ok || r != 10 || g != 20 || bl != 30 {
		t.Errorf("Pixel = %d %d %d %v", r, g, bl, ok)
	}
	if _, _, _, ok := b.Pixel(4, 0); ok {
		t.Error("Pixel outside the buffer should report !ok")
	}
}

func TestClear(t *testing.T) {
	b := New(33, 17)
	b.Clear(1, 2, 3)
	for i := 0; i < len(b.Bytes()); i += 4 {
		if !bytes.Equal(b.Bytes()[i:i+4], []byte{255, 3, 2, 1}) {
			t.Fatalf("byte %d = %v", i, b.Bytes()[i:i+4])
		}
	}
}

func TestBlendAndAdd(t *testing.T) {
	tests := []struct {
		name     string
		dst      uint8
		src      uint8
		alpha    uint8
		want     uint8
		additive bool
	}{
		{"opaque", 0, 200, 255, 200, false},
		{"transparent", 90, 200, 0, 90, false},
		{"half", 0, 255, 128, 128, false},
		{"add", 100, 100, 0, 200, true},
		{"add saturates", 200, 100, 0, 255, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(1, 1)
			b.Clear(tt.dst, tt.dst, tt.dst)
			if tt.additive {
				b.AddPixel(0, 0, tt.src, tt.src, tt.src)
			} else {
				b.BlendPixel(0, 0, tt.src, tt.src, tt.src, tt.alpha)
			}
			r, _, _, _ := b.Pixel(0, 0)
			if r != tt.want {
				t.Errorf("got %d, want %d", r, tt.want)
			}
			if b.Bytes()[0] != 255 {
				t.Errorf("alpha byte = %d, want 255", b.Bytes()[0])
			}
		})
	}
}

// Every primitive must clip silently for any integer input.
func TestPrimitivesClip(t *testing.T) {
	coords := []int{math.MinInt32, -100000, -1, 0, 1, 319, 320, 100000, math.MaxInt32}
	b := NewWithDepth(320, 240)
	for _, x0 := range coords {
		for _, y0 := range coords {
			b.SetPixel(x0, y0, 1, 2, 3)
			b.FillRect(x0, y0, 50, 50, 1, 2, 3)
			b.FillCircle(x0, y0, 20, 1, 2, 3)
			b.FillCircleBlend(x0, y0, 20, 1, 2, 3, 100)
			b.DrawCircle(x0, y0, 20, 1, 2, 3)
			b.FillCircleGradient(x0, y0, 20, 1, 2, 3, 2)
			b.HLine(x0, y0, 5, 1, 2, 3)
			b.VLine(5, x0, y0, 1, 2, 3)
			for _, x1 := range coords {
				b.Line(x0, y0, x1, 120, 1, 2, 3)
				b.LineAA(float64(x0), float64(y0), float64(x1), 120, 1, 2, 3)
				b.LineAAAdditive(float64(x0), float64(y0), 100, float64(x1), 1, 2, 3)
			}
			b.FillPolygon([][2]float64{{float64(x0), float64(y0)}, {100, 100}, {float64(y0), 50}}, 1, 2, 3)
			b.SplatPixel(float64(x0)+0.3, float64(y0)+0.7, 1, 2, 3, 1)
		}
	}
	b.FillPolygon([][2]float64{{math.NaN(), 0}, {10, math.Inf(1)}, {5, 5}}, 1, 2, 3)
	b.LineAA(math.NaN(), 0, 10, 10, 1, 2, 3)
	b.Bloom(10, 3, 1)
	b.BoxBlur(1000)
}

func TestHugeCircles(t *testing.T) {
	b := New(64, 48)
	huge := 1 << 40
	b.FillCircle(32, 24, huge, 7, 0, 0)
	for _, p := range [][2]int{{0, 0}, {63, 47}, {32, 24}} {
		if r, _, _, _ := b.Pixel(p[0], p[1]); r != 7 {
			t.Fatalf("pixel %v not covered by a huge circle", p)
		}
	}
	b.FillCircleBlend(-huge/2, 24, huge, 1, 2, 3, 128)
	b.FillCircleAdditive(32, huge, huge, 1, 2, 3)
	b.FillCircleGradient(32, 24, huge, 1, 2, 3, 2)

	// An outline far larger than the buffer leaves its inside untouched.
	b.Clear(0, 0, 0)
	b.DrawCircle(32, 24, huge, 9, 9, 9)
	if r, _, _, _ := b.Pixel(32, 24); r != 0 {
		t.Fatal("huge outline drew through the centre")
	}
}

func TestDrawCircleClosed(t *testing.T) {
	b := New(41, 41)
	b.DrawCircle(20, 20, 15, 9, 9, 9)
	for y := 0; y < 41; y++ {
		n := 0
		for x := 0; x < 41; x++ {
			if r, _, _, _ := b.Pixel(x, y); r == 9 {
				n++
			}
		}
		inside := y >= 5 && y <= 35
		if inside && n == 0 || !inside && n != 0 {
			t.Errorf("row %d has %d outline pixels", y, n)
		}
	}
	for _, p := range [][2]int{{35, 20}, {5, 20}, {20, 5}, {20, 35}} {
		if r, _, _, _ := b.Pixel(p[0], p[1]); r != 9 {
			t.Errorf("extreme point %v missing", p)
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	b := New(10, 10)
	b.Line(-5, -5, 20, 20, 255, 0, 0)
	for i := 0; i < 10; i++ {
		if r, _, _, _ := b.Pixel(i, i); r != 255 {
			t.Errorf("diagonal pixel (%d,%d) not drawn", i, i)
		}
	}
}

func TestFillRectExact(t *testing.T) {
	b := New(10, 10)
	b.FillRect(2, 3, 4, 2, 9, 9, 9)
	count := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if r, _, _, _ := b.Pixel(x, y); r == 9 {
				count++
			}
		}
	}
	if count != 8 {
		t.Errorf("filled %d pixels, want 8", count)
	}
}

func TestFillPolygonPixelCenters(t *testing.T) {
	b := New(20, 20)
	b.FillPolygon([][2]float64{{2, 2}, {12, 2}, {12, 12}, {2, 12}}, 255, 255, 255)
	if r, _, _, _ := b.Pixel(5, 5); r != 255 {
		t.Error("interior pixel not filled")
	}
	if r, _, _, _ := b.Pixel(5, 12); r != 0 {
		t.Error("row below the bottom edge filled")
	}
	if r, _, _, _ := b.Pixel(15, 5); r != 0 {
		t.Error("pixel right of the polygon filled")
	}
}

func TestGouraudHorizontalEdges(t *testing.T) {
	b := New(64, 64)
	// flat top and flat bottom triangles
	b.FillPolygonGouraud([]GouraudVertex{
		{X: 10, Y: 10, R: 255}, {X: 50, Y: 10, G: 255}, {X: 30, Y: 40, B: 255},
	})
	b.FillPolygonGouraud([]GouraudVertex{
		{X: 30, Y: 41, R: 255}, {X: 10, Y: 60, G: 255}, {X: 50, Y: 60, B: 255},
	})
	// fully degenerate
	b.FillPolygonGouraud([]GouraudVertex{{X: 5, Y: 5}, {X: 9, Y: 5}, {X: 12, Y: 5}})

	r, g, _, _ := b.Pixel(12, 11)
	if r < 200 || g > 60 {
		t.Errorf("near red vertex got r=%d g=%d", r, g)
	}
	_, _, bl, _ := b.Pixel(30, 38)
	if bl < 150 {
		t.Errorf("near blue vertex got b=%d", bl)
	}
}

func TestHLineGouraudSinglePixel(t *testing.T) {
	b := New(4, 1)
	b.HLineGouraud(2, 2, 0, 100, 50, 25, 0, 0, 0)
	r, g, bl, _ := b.Pixel(2, 0)
	if r != 100 || g != 50 || bl != 25 {
		t.Errorf("got %d %d %d", r, g, bl)
	}
}

func TestDim(t *testing.T) {
	b := New(2, 1)
	b.Clear(201, 100, 3)
	b.Dim()
	if !bytes.Equal(b.Bytes()[:4], []byte{255, 1, 50, 100}) {
		t.Errorf("dimmed bytes = %v", b.Bytes()[:4])
	}
}

func TestFade(t *testing.T) {
	b := New(1, 1)
	b.Clear(200, 100, 0)
	b.Fade(128)
	r, g, _, _ := b.Pixel(0, 0)
	if r != 100 || g != 50 {
		t.Errorf("faded to %d %d", r, g)
	}
}

func TestMaskRegionsIdempotent(t *testing.T) {
	scene := region.NewScene("t")
	scene.Add(region.NewPolygonRegion("a", region.NewPolygon([2]float64{20, 20}, [2]float64{120, 30}, [2]float64{90, 140})))
	scene.Add(region.NewCircleRegion("b", region.NewCircle(200, 100, 40)))

	b := New(320, 240)
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			b.SetPixel(x, y, uint8(x), uint8(y), uint8(x^y))
		}
	}
	c := RGB{20, 5, 30}
	b.MaskRegions(scene, c)
	first := append([]byte(nil), b.Bytes()...)
	b.MaskRegions(scene, c)
	if !bytes.Equal(first, b.Bytes()) {
		t.Error("second mask step changed the buffer")
	}
	if r, g, bl, _ := b.Pixel(200, 100); r != 20 || g != 5 || bl != 30 {
		t.Errorf("circle center = %d %d %d", r, g, bl)
	}
}

func TestBloomBrightensNeighbours(t *testing.T) {
	b := New(32, 32)
	b.FillRect(14, 14, 4, 4, 255, 255, 255)
	b.Bloom(100, 2, 1)
	if r, _, _, _ := b.Pixel(12, 16); r == 0 {
		t.Error("bloom did not spread light to a neighbour")
	}
	if r, _, _, _ := b.Pixel(0, 0); r != 0 {
		t.Error("bloom reached a far corner")
	}
}

func TestBoxBlurUniform(t *testing.T) {
	b := New(16, 9)
	b.Clear(90, 60, 30)
	b.BoxBlur(3)
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			if r, g, bl, _ := b.Pixel(x, y); r != 90 || g != 60 || bl != 30 {
				t.Fatalf("(%d,%d) = %d %d %d", x, y, r, g, bl)
			}
		}
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		deg  int
		want Rotation
		ok   bool
	}{
		{0, Rotate0, true},
		{90, Rotate90, true},
		{180, Rotate180, true},
		{270, Rotate270, true},
		{45, Rotate0, false},
		{-90, Rotate0, false},
		{360, Rotate0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRotation(tt.deg)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRotation(%d) = %v, %v; want %v, %v", tt.deg, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFillShapeSaturatesCoords(t *testing.T) {
	b := New(16, 16)
	b.FillShape(region.NewCircle(8, 8, 1e300), RGB{R: 5})
	if r, _, _, _ := b.Pixel(0, 0); r != 5 {
		t.Errorf("corner = %d, want covered by a huge circle", r)
	}
	b.FillShape(region.NewCircle(math.NaN(), 8, 4), RGB{R: 9})
	if r, _, _, _ := b.Pixel(8, 8); r != 5 {
		t.Errorf("NaN circle drew over (8,8): %d", r)
	}
}

func TestRotated(t *testing.T) {
	b := New(3, 2)
	b.SetPixel(0, 0, 1, 0, 0)
	b.SetPixel(2, 1, 2, 0, 0)

	tests := []struct {
		rot  Rotation
		w, h int
		at   [2]int // where logical (0,0) lands
	}{
		{Rotate90, 2, 3, [2]int{1, 0}},
		{Rotate180, 3, 2, [2]int{2, 1}},
		{Rotate270, 2, 3, [2]int{0, 2}},
		{Rotate0, 3, 2, [2]int{0, 0}},
	}
	for _, tt := range tests {
		out := b.Rotated(tt.rot, nil)
		if out.Width() != tt.w || out.Height() != tt.h {
			t.Errorf("rot %d: size %dx%d", tt.rot, out.Width(), out.Height())
			continue
		}
		if r, _, _, _ := out.Pixel(tt.at[0], tt.at[1]); r != 1 {
			t.Errorf("rot %d: origin pixel not at %v", tt.rot, tt.at)
		}
		x, y := tt.rot.UnrotatePoint(tt.at[0], tt.at[1], 3, 2)
		if x != 0 || y != 0 {
			t.Errorf("rot %d: UnrotatePoint(%v) = %d,%d", tt.rot, tt.at, x, y)
		}
	}
}

func TestFillTriangleDepth(t *testing.T) {
	b := NewWithDepth(40, 40)
	n := mathutil.Vec3{0, 0, -1}
	far := [3]mathutil.Vec3{{0, 0, 10}, {39, 0, 10}, {0, 39, 10}}
	near := [3]mathutil.Vec3{{0, 0, 5}, {39, 0, 5}, {0, 39, 5}}

	b.FillTriangleDepth(near[0], near[1], near[2], n, 0, 255, 0, nil)
	b.FillTriangleDepth(far[0], far[1], far[2], n, 255, 0, 0, nil)
	if r, g, _, _ := b.Pixel(5, 5); g != 255 || r != 0 {
		t.Errorf("far triangle overwrote near one: r=%d g=%d", r, g)
	}
	if d := b.DepthAt(5, 5); d != 5 {
		t.Errorf("depth = %v, want 5", d)
	}
	if d := b.DepthAt(39, 39); !math.IsInf(d, 1) {
		t.Errorf("uncovered depth = %v, want +Inf", d)
	}

	lc := DefaultLightConfig()
	b.ClearDepth()
	b.FillTriangleDepth(far[0], far[1], far[2], n, 200, 200, 200, &lc)
	if r, _, _, _ := b.Pixel(5, 5); r == 0 {
		t.Error("lit triangle rendered black")
	}
}
