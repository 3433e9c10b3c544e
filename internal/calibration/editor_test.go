package calibration

import (
	"math"
	"testing"

	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

func click(e *Editor, x, y int) {
	e.MouseDown(x, y, ButtonLeft)
	e.MouseUp(x, y, ButtonLeft)
}

func drawSquare(e *Editor) {
	for _, p := range [][2]int{{100, 100}, {300, 100}, {300, 200}, {100, 200}, {102, 102}} {
		click(e, p[0], p[1])
	}
}

func TestDrawPolygonSnapsClosed(t *testing.T) {
	e := New(nil)
	drawSquare(e)

	s := e.Scene()
	if len(s.Regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(s.Regions))
	}
	p, ok := s.Regions[0].Polygon()
	if !ok {
		t.Fatalf("shape = %T, want polygon", s.Regions[0].Shape)
	}
	want := []region.Point{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 200}, {X: 100, Y: 200}}
	if len(p.Vertices) != len(want) {
		t.Fatalf("vertices = %v", p.Vertices)
	}
	for i := range want {
		if p.Vertices[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, p.Vertices[i], want[i])
		}
	}
	if i, ok := e.Selected(); !ok || i != 0 || e.State() != StateSelected {
		t.Errorf("state = %v (%d)", e.State(), i)
	}
	if s.Regions[0].Name != "region_1" || e.NextName() != "region_2" {
		t.Errorf("name %q, next %q", s.Regions[0].Name, e.NextName())
	}
}

func TestDrawingNeedsThreeVertices(t *testing.T) {
	e := New(nil)
	click(e, 100, 100)
	click(e, 200, 100)
	click(e, 101, 101)
	if e.State() != StateDrawing || len(e.Drawing()) != 3 {
		t.Errorf("state %v with %d vertices", e.State(), len(e.Drawing()))
	}
	if len(e.Scene().Regions) != 0 {
		t.Error("polygon closed with two vertices")
	}
}

func TestDrawCircle(t *testing.T) {
	tests := []struct {
		name    string
		release [2]int
		want    State
		regions int
	}{
		{"large enough", [2]int{250, 200}, StateSelected, 1},
		{"too small", [2]int{205, 200}, StateIdle, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(nil)
			e.SetShift(true)
			e.MouseDown(200, 200, ButtonLeft)
			if e.State() != StateDrawingCircle {
				t.Fatalf("state after shift-click = %v", e.State())
			}
			e.MouseMove(tt.release[0], tt.release[1])
			e.MouseUp(tt.release[0], tt.release[1], ButtonLeft)
			if e.State() != tt.want || len(e.Scene().Regions) != tt.regions {
				t.Fatalf("state %v, %d regions", e.State(), len(e.Scene().Regions))
			}
			if tt.regions == 1 {
				c, ok := e.Scene().Regions[0].Circle()
				if !ok || c.Radius != 50 || c.Center != (region.Point{X: 200, Y: 200}) {
					t.Errorf("circle = %+v", c)
				}
			}
		})
	}
}

func TestDragVertex(t *testing.T) {
	e := New(nil)
	drawSquare(e)
	click(e, 500, 400) // deselect by starting a new drawing
	e.MouseDown(500, 400, ButtonRight)
	if e.State() != StateIdle {
		t.Fatalf("right click left state %v", e.State())
	}

	e.MouseDown(299, 199, ButtonLeft)
	if e.State() != StateDraggingVertex {
		t.Fatalf("state = %v, want dragging vertex", e.State())
	}
	e.MouseMove(350, 260)
	e.MouseUp(350, 260, ButtonLeft)
	if e.State() != StateSelected {
		t.Errorf("state after release = %v", e.State())
	}
	p, _ := e.Scene().Regions[0].Polygon()
	if p.Vertices[2] != (region.Point{X: 350, Y: 260}) {
		t.Errorf("vertex 2 = %v", p.Vertices[2])
	}
}

func TestMoveWithoutButtonDoesNotDrag(t *testing.T) {
	e := New(nil)
	drawSquare(e)
	e.MouseMove(50, 50)
	p, _ := e.Scene().Regions[0].Polygon()
	if p.Vertices[0] != (region.Point{X: 100, Y: 100}) {
		t.Errorf("vertex moved to %v", p.Vertices[0])
	}
}

func TestCircleHandles(t *testing.T) {
	scene := region.NewScene("wall")
	scene.Add(region.NewCircleRegion("clock", region.NewCircle(320, 240, 50)))

	tests := []struct {
		name string
		x, y int
		want State
	}{
		{"center", 325, 240, StateDraggingCircleCenter},
		{"edge", 366, 240, StateResizingCircle},
		{"interior", 290, 240, StateSelected},
		{"outside", 100, 100, StateDrawing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(scene.Clone())
			e.MouseDown(tt.x, tt.y, ButtonLeft)
			if e.State() != tt.want {
				t.Errorf("state = %v, want %v", e.State(), tt.want)
			}
		})
	}
}

func TestResizeClampsRadius(t *testing.T) {
	scene := region.NewScene("wall")
	scene.Add(region.NewCircleRegion("clock", region.NewCircle(320, 240, 50)))
	e := New(scene)
	e.MouseDown(368, 240, ButtonLeft)
	e.MouseMove(323, 240)
	c, _ := scene.Regions[0].Circle()
	if c.Radius != region.MinCircleRadius {
		t.Errorf("radius = %v, want %v", c.Radius, region.MinCircleRadius)
	}
	e.MouseMove(420, 240)
	if c.Radius != 100 {
		t.Errorf("radius = %v, want 100", c.Radius)
	}
}

func TestTopmostRegionWins(t *testing.T) {
	scene := region.NewScene("wall")
	scene.Add(region.NewPolygonRegion("back", region.NewPolygon(
		[2]float64{0, 0}, [2]float64{200, 0}, [2]float64{200, 200}, [2]float64{0, 200})))
	scene.Add(region.NewPolygonRegion("front", region.NewPolygon(
		[2]float64{50, 50}, [2]float64{150, 50}, [2]float64{150, 150}, [2]float64{50, 150})))
	e := New(scene)
	click(e, 100, 100)
	if i, ok := e.Selected(); !ok || i != 1 {
		t.Errorf("selected %d, want the front region", i)
	}
	click(e, 20, 20)
	if i, ok := e.Selected(); !ok || i != 0 {
		t.Errorf("selected %d, want the back region", i)
	}
}

func TestDeleteSelected(t *testing.T) {
	e := New(nil)
	if e.DeleteSelected() {
		t.Error("delete with nothing selected")
	}
	drawSquare(e)
	if !e.DeleteSelected() {
		t.Fatal("delete failed")
	}
	if len(e.Scene().Regions) != 0 || e.State() != StateIdle {
		t.Errorf("%d regions, state %v", len(e.Scene().Regions), e.State())
	}
}

func TestIncrementName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"region_1", "region_2"},
		{"region_9", "region_10"},
		{"frame_a", "frame_a"},
		{"plain", "plain"},
		{"a_b_41", "a_b_42"},
	}
	for _, tt := range tests {
		if got := incrementName(tt.in); got != tt.want {
			t.Errorf("incrementName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderOverlay(t *testing.T) {
	e := New(nil)
	drawSquare(e)
	buf := raster.New(640, 480)
	fill := raster.RGB{R: 9, G: 8, B: 7}
	e.Render(buf, fill)

	// the mouse rests on vertex 0, so its handle is hovered
	if r, g, b, _ := buf.Pixel(100, 100); r != hoverColor.R || g != hoverColor.G || b != hoverColor.B {
		t.Errorf("hovered handle = (%d,%d,%d)", r, g, b)
	}
	if r, g, b, _ := buf.Pixel(300, 200); r != handleColor.R || g != handleColor.G || b != handleColor.B {
		t.Errorf("handle = (%d,%d,%d)", r, g, b)
	}
	if r, g, b, _ := buf.Pixel(200, 150); r != fill.R || g != fill.G || b != fill.B {
		t.Errorf("interior = (%d,%d,%d), want the fill color", r, g, b)
	}
	if r, g, b, _ := buf.Pixel(200, 100); r != selectedColor.R || g != selectedColor.G || b != selectedColor.B {
		t.Errorf("outline = (%d,%d,%d)", r, g, b)
	}
}

func TestPixelClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{12.7, 12},
		{-3.2, -3},
		{math.NaN(), 0},
		{math.Inf(1), region.MaxCoord},
		{-1e300, -region.MaxCoord},
	}
	for _, tt := range tests {
		if got := pixel(tt.in); got != tt.want {
			t.Errorf("pixel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderOverlayHugeCircle(t *testing.T) {
	scene := region.NewScene("wall")
	scene.Add(region.NewCircleRegion("c", region.NewCircle(320, 240, math.Inf(1))))
	scene.Add(region.NewCircleRegion("n", region.NewCircle(math.NaN(), 240, 50)))
	e := New(scene)
	buf := raster.New(64, 48)
	e.Render(buf, raster.RGB{R: 1})
}
