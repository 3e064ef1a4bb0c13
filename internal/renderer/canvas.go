package renderer

import (
	"fmt"
	"math"

	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/renderer/backend"
	"github.com/vexcanvas/vexcanvas/internal/shape"
	"github.com/vexcanvas/vexcanvas/internal/snap"
)

// Frame is everything the canvas needs to draw one frame. The caller
// assembles it from the editor so the renderer stays a pure consumer.
type Frame struct {
	Shapes         []*shape.Shape
	Selection      map[string]bool
	LayerIndex     map[string]int // layer id -> palette index
	Guides         []snap.Guide
	SnapTarget     *geom.Point
	ShowDimensions bool
}

// Canvas projects world coordinates onto a cell grid and draws shape
// outlines, guides and indicators.
type Canvas struct {
	b backend.Backend

	// World units per cell. Terminal cells are roughly twice as tall
	// as wide, so the vertical scale is halved to keep squares square.
	scale  float64
	origin geom.Point
}

// NewCanvas creates a canvas over the given backend.
func NewCanvas(b backend.Backend) *Canvas {
	return &Canvas{b: b, scale: 1}
}

// SetView sets the world origin of the top-left cell and the zoom.
func (c *Canvas) SetView(origin geom.Point, scale float64) {
	if scale > 0 {
		c.scale = scale
	}
	c.origin = origin
}

// Scale returns the current zoom.
func (c *Canvas) Scale() float64 { return c.scale }

// WorldAt converts a cell position back to world coordinates, the
// inverse of the projection used for drawing.
func (c *Canvas) WorldAt(x, y int) geom.Point {
	return geom.Pt(
		float64(x)/c.scale+c.origin.X,
		float64(y)*2/c.scale+c.origin.Y,
	)
}

func (c *Canvas) project(p geom.Point) (int, int) {
	return int(math.Round((p.X - c.origin.X) * c.scale)),
		int(math.Round((p.Y - c.origin.Y) * c.scale / 2))
}

// Render draws a frame. The backend is cleared first and shown after.
func (c *Canvas) Render(f Frame) {
	c.b.Clear()

	for _, g := range f.Guides {
		c.drawGuide(g)
	}
	for _, s := range f.Shapes {
		c.drawShape(s, f)
	}
	if f.SnapTarget != nil {
		x, y := c.project(*f.SnapTarget)
		c.set(x, y, 'x', colorOf(ColorSnapped))
	}

	c.b.Show()
}

func (c *Canvas) drawShape(s *shape.Shape, f Frame) {
	color := colorOf(LayerColor(f.LayerIndex[s.LayerID]))
	if f.Selection[s.ID] {
		color = colorOf(ColorSelection)
	}

	outline := outlinePoints(s)
	if s.Rotation != nil {
		rotated := make([]geom.Point, len(outline))
		for i, p := range outline {
			rotated[i] = p.RotateAround(s.Rotation.Center, s.Rotation.Angle)
		}
		outline = rotated
	}

	closed := s.Kind != shape.KindPolyline && s.Kind != shape.KindLine
	for i := 0; i+1 < len(outline); i++ {
		c.drawSegment(outline[i], outline[i+1], color)
	}
	if closed && len(outline) > 2 {
		c.drawSegment(outline[len(outline)-1], outline[0], color)
	}

	if f.ShowDimensions && f.Selection[s.ID] {
		c.drawDimensions(s)
	}
}

// outlinePoints expands a shape to the polyline tracing its outline.
// Rectangles in 2-point form expand to four corners; circles sample
// the circumference.
func outlinePoints(s *shape.Shape) []geom.Point {
	switch {
	case s.IsTwoPointRectangle():
		return geom.RectFromPoints(s.Points).Corners()
	case s.Kind == shape.KindCircle && len(s.Points) == 2:
		center := s.Points[0]
		radius := center.Distance(s.Points[1])
		const steps = 32
		out := make([]geom.Point, steps)
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / steps
			out[i] = geom.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
		}
		return out
	default:
		return s.Points
	}
}

// drawSegment rasterizes one world-space segment with a DDA walk.
func (c *Canvas) drawSegment(a, b geom.Point, color backend.Color) {
	x0, y0 := c.project(a)
	x1, y1 := c.project(b)

	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.set(x0, y0, '#', color)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		c.set(x, y, segmentRune(dx, dy), color)
	}
}

func segmentRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '-'
	case dx == 0:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (c *Canvas) drawGuide(g snap.Guide) {
	c.drawSegment(g.From, g.To, colorOf(ColorGuide))
}

func (c *Canvas) drawDimensions(s *shape.Shape) {
	b := s.Bounds()
	label := fmt.Sprintf("%.1fx%.1f", b.Width(), b.Height())
	x, y := c.project(geom.Pt(b.MinX, b.MaxY))
	c.text(x, y+1, label, colorOf(ColorDimension))
}

func (c *Canvas) text(x, y int, s string, color backend.Color) {
	for i, r := range s {
		c.set(x+i, y, r, color)
	}
}

func (c *Canvas) set(x, y int, r rune, color backend.Color) {
	w, h := c.b.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.b.SetCell(x, y, backend.Cell{Rune: r, Color: color})
}

func colorOf(c Color) backend.Color {
	return backend.Color{R: c.R, G: c.G, B: c.B}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
