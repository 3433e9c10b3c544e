package calibration

import (
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

var (
	handleColor    = raster.RGB{R: 200, G: 200, B: 255}
	hoverColor     = raster.RGB{R: 255, G: 200, B: 100}
	dragColor      = raster.RGB{R: 255, G: 255, B: 100}
	selectedColor  = raster.RGB{R: 100, G: 150, B: 255}
	outlineColor   = raster.RGB{R: 80, G: 120, B: 80}
	edgeColor      = raster.RGB{R: 255, G: 220, B: 0}
	rubberColor    = raster.RGB{R: 255, G: 220, B: 100}
	firstColor     = raster.RGB{R: 255, G: 100, B: 100}
	closeColor     = raster.RGB{R: 0, G: 255, B: 100}
	crosshairColor = raster.RGB{R: 255, G: 255, B: 255}
)

// pixel converts a coordinate for the int raster API. NaN maps to 0 and
// anything past region.MaxCoord is clamped so the conversion stays defined.
func pixel(v float64) int {
	if v != v {
		return 0
	}
	return int(max(min(v, region.MaxCoord), -region.MaxCoord))
}

// Render draws the editor overlay: every region filled with fill and
// outlined, handles on the selected region, the polygon or circle being
// drawn and a crosshair at the mouse.
func (e *Editor) Render(buf *raster.Buffer, fill raster.RGB) {
	sel, hasSel := e.Selected()
	for i := range e.scene.Regions {
		r := &e.scene.Regions[i]
		buf.FillShape(r.Shape, fill)
		outline := outlineColor
		if hasSel && i == sel {
			outline = selectedColor
		}
		switch sh := r.Shape.(type) {
		case *region.Polygon:
			drawOutline(buf, sh, outline)
			if hasSel && i == sel {
				e.polygonHandles(buf, sh)
			}
		case *region.Circle:
			buf.DrawCircle(pixel(sh.Center.X), pixel(sh.Center.Y), pixel(sh.Radius), outline.R, outline.G, outline.B)
			if hasSel && i == sel {
				e.circleHandles(buf, sh)
			}
		}
	}

	switch e.state {
	case StateDrawing:
		e.renderDrawing(buf)
	case StateDrawingCircle:
		if r := e.center.DistanceTo(e.mouse()); r >= 5 {
			buf.DrawCircle(int(e.center.X), int(e.center.Y), int(r), edgeColor.R, edgeColor.G, edgeColor.B)
		}
		square(buf, e.center, 4, firstColor)
	}

	mx, my := e.mouseX, e.mouseY
	c := crosshairColor
	buf.Line(mx-15, my, mx-5, my, c.R, c.G, c.B)
	buf.Line(mx+5, my, mx+15, my, c.R, c.G, c.B)
	buf.Line(mx, my-15, mx, my-5, c.R, c.G, c.B)
	buf.Line(mx, my+5, mx, my+15, c.R, c.G, c.B)
}

func drawOutline(buf *raster.Buffer, p *region.Polygon, c raster.RGB) {
	if len(p.Vertices) < 2 {
		return
	}
	p.Edges(func(a, b region.Point) {
		buf.Line(pixel(a.X), pixel(a.Y), pixel(b.X), pixel(b.Y), c.R, c.G, c.B)
	})
}

// handleStyle returns the half-size and color of a handle.
func handleStyle(dragging, hovered bool) (int, raster.RGB) {
	switch {
	case dragging:
		return 6, dragColor
	case hovered:
		return 5, hoverColor
	}
	return 4, handleColor
}

func (e *Editor) polygonHandles(buf *raster.Buffer, p *region.Polygon) {
	m := e.mouse()
	for j, v := range p.Vertices {
		dragging := e.state == StateDraggingVertex && e.vertex == j
		size, c := handleStyle(dragging, !dragging && m.DistanceTo(v) < VertexHandleSize)
		square(buf, v, size, c)
	}
}

func (e *Editor) circleHandles(buf *raster.Buffer, c *region.Circle) {
	m := e.mouse()
	d := m.DistanceTo(c.Center)
	size, col := handleStyle(e.state == StateDraggingCircleCenter, d < VertexHandleSize*2)
	square(buf, c.Center, size, col)

	edge := region.Point{X: c.Center.X + c.Radius, Y: c.Center.Y}
	hovered := m.DistanceTo(edge) < VertexHandleSize || abs(d-c.Radius) < VertexHandleSize
	size, col = handleStyle(e.state == StateResizingCircle, hovered)
	square(buf, edge, size, col)
}

func (e *Editor) renderDrawing(buf *raster.Buffer) {
	vs := e.drawing
	for i := 0; i+1 < len(vs); i++ {
		buf.Line(int(vs[i].X), int(vs[i].Y), int(vs[i+1].X), int(vs[i+1].Y), edgeColor.R, edgeColor.G, edgeColor.B)
	}
	if len(vs) > 0 {
		last := vs[len(vs)-1]
		buf.Line(int(last.X), int(last.Y), e.mouseX, e.mouseY, rubberColor.R, rubberColor.G, rubberColor.B)
	}
	m := e.mouse()
	for i, v := range vs {
		switch {
		case i == 0 && len(vs) >= 3 && m.DistanceTo(v) < SnapDistance:
			square(buf, v, 6, closeColor)
		case i == 0:
			square(buf, v, 4, firstColor)
		default:
			square(buf, v, 3, edgeColor)
		}
	}
}

// square fills a (2·half+1)² box centered on p.
func square(buf *raster.Buffer, p region.Point, half int, c raster.RGB) {
	buf.FillRect(pixel(p.X)-half, pixel(p.Y)-half, half*2+1, half*2+1, c.R, c.G, c.B)
}
