// Package calibration is the mouse-driven region editor shown while the wall
// is frozen: it draws polygons and circles, selects them, drags vertices and
// circle handles, and deletes regions from the scene it owns.
package calibration

import (
	"strconv"
	"strings"

	"wallfacer/internal/region"
)

const (
	SnapDistance     = 12.0
	VertexHandleSize = 8.0
	DefaultName      = "region_1"
)

// State is the editor's current mode.
type State uint8

const (
	StateIdle                 State = iota // nothing selected
	StateDrawing                           // placing polygon vertices
	StateDrawingCircle                     // Shift-drag from a center
	StateSelected                          // a region is selected
	StateDraggingVertex                    // moving one polygon vertex
	StateDraggingCircleCenter              // moving a circle
	StateResizingCircle                    // dragging a circle's edge
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateDrawingCircle:
		return "drawing circle"
	case StateSelected:
		return "selected"
	case StateDraggingVertex:
		return "dragging vertex"
	case StateDraggingCircleCenter:
		return "dragging circle"
	case StateResizingCircle:
		return "resizing circle"
	}
	return "unknown"
}

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Editor is the calibration state machine. Index and vertex fields are only
// meaningful in the states that use them.
type Editor struct {
	scene *region.Scene

	state    State
	index    int
	vertex   int
	drawing  []region.Point
	center   region.Point
	mouseX   int
	mouseY   int
	mouseBtn bool
	shift    bool
	nextName string
}

// New returns an idle editor that edits scene in place. A nil scene is
// replaced by an empty one.
func New(scene *region.Scene) *Editor {
	if scene == nil {
		scene = region.NewScene(region.DefaultSceneName)
	}
	return &Editor{scene: scene, nextName: DefaultName}
}

func (e *Editor) Scene() *region.Scene { return e.scene }

// SetScene swaps in a new scene, for example after a load, and returns to idle.
func (e *Editor) SetScene(s *region.Scene) {
	if s == nil {
		s = region.NewScene(region.DefaultSceneName)
	}
	e.scene = s
	e.Reset()
}

// Reset drops any selection or drawing in progress.
func (e *Editor) Reset() {
	e.state = StateIdle
	e.drawing = nil
}

func (e *Editor) State() State { return e.state }

// Selected returns the selected region index, if a state carries one.
func (e *Editor) Selected() (int, bool) {
	switch e.state {
	case StateSelected, StateDraggingVertex, StateDraggingCircleCenter, StateResizingCircle:
		return e.index, true
	}
	return -1, false
}

// Drawing returns the vertices placed so far while drawing a polygon.
func (e *Editor) Drawing() []region.Point { return e.drawing }

func (e *Editor) Mouse() (int, int) { return e.mouseX, e.mouseY }

// NextName is the name the next created region receives.
func (e *Editor) NextName() string { return e.nextName }

func (e *Editor) SetShift(held bool) { e.shift = held }

func (e *Editor) mouse() region.Point {
	return region.Point{X: float64(e.mouseX), Y: float64(e.mouseY)}
}

// MouseMove tracks the cursor and, while the left button is held, moves the
// dragged vertex, circle center or circle edge.
func (e *Editor) MouseMove(x, y int) {
	e.mouseX, e.mouseY = x, y
	if !e.mouseBtn {
		return
	}
	switch e.state {
	case StateDraggingVertex:
		if p := e.polygon(e.index); p != nil && e.vertex < len(p.Vertices) {
			p.Vertices[e.vertex] = e.mouse()
		}
	case StateDraggingCircleCenter:
		if c := e.circle(e.index); c != nil {
			c.Center = e.mouse()
		}
	case StateResizingCircle:
		if c := e.circle(e.index); c != nil {
			c.Radius = max(c.Center.DistanceTo(e.mouse()), region.MinCircleRadius)
		}
	}
}

// MouseDown handles a button press at (x, y).
func (e *Editor) MouseDown(x, y int, b Button) {
	e.mouseX, e.mouseY = x, y
	switch b {
	case ButtonLeft:
		e.mouseBtn = true
		e.leftClick()
	case ButtonRight:
		e.Reset()
	}
}

// MouseUp ends drags and finishes a circle being drawn.
func (e *Editor) MouseUp(x, y int, b Button) {
	e.mouseX, e.mouseY = x, y
	if b != ButtonLeft {
		return
	}
	e.mouseBtn = false
	switch e.state {
	case StateDraggingVertex, StateDraggingCircleCenter, StateResizingCircle:
		e.state = StateSelected
	case StateDrawingCircle:
		r := e.center.DistanceTo(e.mouse())
		if r < region.MinCircleRadius {
			e.state = StateIdle
			return
		}
		e.create(region.NewCircleRegion(e.nextName, region.NewCircle(e.center.X, e.center.Y, r)))
	}
}

// DeleteSelected removes the selected region and returns to idle. It does
// nothing when no region is selected.
func (e *Editor) DeleteSelected() bool {
	i, ok := e.Selected()
	if !ok {
		return false
	}
	_, removed := e.scene.RemoveAt(i)
	e.state = StateIdle
	return removed
}

func (e *Editor) leftClick() {
	click := e.mouse()
	switch e.state {
	case StateIdle:
		e.pick(click, -1)
	case StateDrawing:
		if len(e.drawing) >= 3 && click.DistanceTo(e.drawing[0]) < SnapDistance {
			p := &region.Polygon{Vertices: e.drawing}
			e.drawing = nil
			e.create(region.NewPolygonRegion(e.nextName, p))
			return
		}
		e.drawing = append(e.drawing, click)
	case StateSelected:
		if e.grabHandle(e.index, click) {
			return
		}
		e.pick(click, e.index)
	}
}

// pick selects the topmost region under click, grabbing a handle when the
// click lands on one, or starts drawing in empty space. Clicking the already
// selected region keeps it selected.
func (e *Editor) pick(click region.Point, current int) {
	i := e.regionAt(click)
	switch {
	case i >= 0 && i == current:
	case i >= 0:
		if !e.grabHandle(i, click) {
			e.state, e.index = StateSelected, i
		}
	case e.shift:
		e.state, e.center = StateDrawingCircle, click
	default:
		e.state = StateDrawing
		e.drawing = []region.Point{click}
	}
}

// grabHandle enters a drag state when click is on a handle of region i.
func (e *Editor) grabHandle(i int, click region.Point) bool {
	if c := e.circle(i); c != nil {
		d := click.DistanceTo(c.Center)
		switch {
		case d < VertexHandleSize*2:
			e.state, e.index = StateDraggingCircleCenter, i
		case abs(d-c.Radius) < VertexHandleSize:
			e.state, e.index = StateResizingCircle, i
		default:
			return false
		}
		return true
	}
	if v := e.vertexAt(i, click); v >= 0 {
		e.state, e.index, e.vertex = StateDraggingVertex, i, v
		return true
	}
	return false
}

func (e *Editor) create(r region.Region) {
	e.scene.Add(r)
	e.state, e.index = StateSelected, len(e.scene.Regions)-1
	e.nextName = incrementName(e.nextName)
}

// regionAt searches topmost first, the reverse of draw order.
func (e *Editor) regionAt(p region.Point) int {
	for i := len(e.scene.Regions) - 1; i >= 0; i-- {
		if e.scene.Regions[i].Contains(p.X, p.Y) {
			return i
		}
	}
	return -1
}

func (e *Editor) vertexAt(i int, p region.Point) int {
	poly := e.polygon(i)
	if poly == nil {
		return -1
	}
	for j, v := range poly.Vertices {
		if p.DistanceTo(v) < VertexHandleSize {
			return j
		}
	}
	return -1
}

func (e *Editor) polygon(i int) *region.Polygon {
	if i < 0 || i >= len(e.scene.Regions) {
		return nil
	}
	p, _ := e.scene.Regions[i].Polygon()
	return p
}

func (e *Editor) circle(i int) *region.Circle {
	if i < 0 || i >= len(e.scene.Regions) {
		return nil
	}
	c, _ := e.scene.Regions[i].Circle()
	return c
}

// incrementName bumps a trailing _<digits> suffix: region_9 becomes region_10.
// Names without one are returned unchanged.
func incrementName(name string) string {
	pos := strings.LastIndexByte(name, '_')
	if pos < 0 {
		return name
	}
	n, err := strconv.ParseUint(name[pos+1:], 10, 32)
	if err != nil {
		return name
	}
	return name[:pos+1] + strconv.FormatUint(n+1, 10)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
