package shape

import (
	"time"

	"github.com/google/uuid"

	"github.com/vexcanvas/vexcanvas/internal/geom"
)

// Kind identifies the geometric type of a shape.
type Kind string

// Shape kinds.
const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindPolygon   Kind = "polygon"
	KindPolyline  Kind = "polyline"
	KindLine      Kind = "line"
)

// Rotation is rotation metadata layered on top of a shape's unrotated
// points. Consumers apply it when rendering or measuring; the transform
// engines never bake it into the point list.
type Rotation struct {
	Angle  float64    `json:"angle"`
	Center geom.Point `json:"center"`
}

// Shape is a polygonal element on the canvas.
//
// A rectangle is stored either as 2 opposite corners (the simple,
// unrotated case) or as 4 explicit corners (after a multi-selection
// transform). The two encodings imply different coordinate-space
// contracts and must never be silently converted into each other outside
// a resize or rotate commit.
type Shape struct {
	ID       string       `json:"id"`
	Kind     Kind         `json:"kind"`
	Points   []geom.Point `json:"points"`
	Rotation *Rotation    `json:"rotation,omitempty"`
	Locked   bool         `json:"locked,omitempty"`
	GroupID  string       `json:"groupId,omitempty"`
	LayerID  string       `json:"layerId,omitempty"`
	Modified int64        `json:"modified"` // Unix milliseconds
}

// New creates a shape of the given kind with a fresh id.
func New(kind Kind, points []geom.Point) *Shape {
	return &Shape{
		ID:       uuid.NewString(),
		Kind:     kind,
		Points:   clonePoints(points),
		Modified: time.Now().UnixMilli(),
	}
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Points = clonePoints(s.Points)
	if s.Rotation != nil {
		r := *s.Rotation
		c.Rotation = &r
	}
	return &c
}

// Bounds returns the axis-aligned bounding box of the unrotated points.
func (s *Shape) Bounds() geom.Rect {
	return geom.RectFromPoints(s.Points)
}

// Centroid returns the arithmetic center of the shape's points.
func (s *Shape) Centroid() geom.Point {
	return geom.Centroid(s.Points)
}

// SetPoints replaces the point list and stamps the modification time.
func (s *Shape) SetPoints(points []geom.Point) {
	s.Points = clonePoints(points)
	s.Touch()
}

// Touch updates the modification timestamp.
func (s *Shape) Touch() {
	s.Modified = time.Now().UnixMilli()
}

// IsTwoPointRectangle reports whether the shape is a rectangle in the
// 2-corner encoding.
func (s *Shape) IsTwoPointRectangle() bool {
	return s.Kind == KindRectangle && len(s.Points) == 2
}

// IsFourPointRectangle reports whether the shape is a rectangle in the
// explicit 4-corner encoding.
func (s *Shape) IsFourPointRectangle() bool {
	return s.Kind == KindRectangle && len(s.Points) == 4
}

func clonePoints(points []geom.Point) []geom.Point {
	out := make([]geom.Point, len(points))
	copy(out, points)
	return out
}
