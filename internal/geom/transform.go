package geom

import "math"

// Axis identifies a cardinal movement axis for the axis-lock constraint.
type Axis uint8

const (
	// AxisNone means no axis lock has been decided yet.
	AxisNone Axis = iota
	// AxisHorizontal constrains movement to the X axis.
	AxisHorizontal
	// AxisVertical constrains movement to the Y axis.
	AxisVertical
)

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	case AxisNone:
		return "none"
	default:
		return "unknown"
	}
}

// DominantAxis returns the axis with the larger offset magnitude.
// Horizontal wins ties.
func DominantAxis(offset Point) Axis {
	if math.Abs(offset.X) >= math.Abs(offset.Y) {
		return AxisHorizontal
	}
	return AxisVertical
}

// ProjectOntoAxis removes the offset component perpendicular to the
// locked axis. AxisNone passes the offset through unchanged.
func ProjectOntoAxis(offset Point, axis Axis) Point {
	switch axis {
	case AxisHorizontal:
		return Point{X: offset.X}
	case AxisVertical:
		return Point{Y: offset.Y}
	default:
		return offset
	}
}

// ScaleEpsilon is the tolerance used to decide whether two per-axis
// scale factors describe a uniform scale.
const ScaleEpsilon = 1e-9

// BoxScale describes a mapping from an original box to a target box.
type BoxScale struct {
	From Rect
	To   Rect
}

// Uniform reports whether the X and Y scale factors are equal within
// ScaleEpsilon.
func (s BoxScale) Uniform() bool {
	sx, sy := s.Factors()
	return math.Abs(sx-sy) < ScaleEpsilon
}

// Factors returns the per-axis scale factors. A zero-extent source axis
// yields factor 1 so degenerate inputs do not explode.
func (s BoxScale) Factors() (sx, sy float64) {
	sx, sy = 1, 1
	if w := s.From.Width(); w != 0 {
		sx = s.To.Width() / w
	}
	if h := s.From.Height(); h != 0 {
		sy = s.To.Height() / h
	}
	return sx, sy
}

// Apply maps a point from the original box into the target box.
//
// For a uniform scale the point's normalized position inside the source box
// is preserved inside the target box scaled by a single factor, which keeps
// inter-shape spacing proportional. For a non-uniform scale each axis is
// interpolated independently, allowing distortion.
func (s BoxScale) Apply(p Point) Point {
	sx, sy := s.Factors()
	if s.Uniform() {
		f := sx
		return Point{
			X: s.To.MinX + (p.X-s.From.MinX)*f,
			Y: s.To.MinY + (p.Y-s.From.MinY)*f,
		}
	}
	return Point{
		X: s.To.MinX + (p.X-s.From.MinX)*sx,
		Y: s.To.MinY + (p.Y-s.From.MinY)*sy,
	}
}

// ApplyAll maps every point through the scale.
func (s BoxScale) ApplyAll(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = s.Apply(p)
	}
	return out
}

// TranslateAll returns a copy of points shifted by the offset.
func TranslateAll(points []Point, d Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Add(d)
	}
	return out
}

// FlipHorizontal mirrors points across the vertical line through center.
func FlipHorizontal(points []Point, center Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: 2*center.X - p.X, Y: p.Y}
	}
	return out
}

// FlipVertical mirrors points across the horizontal line through center.
func FlipVertical(points []Point, center Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X, Y: 2*center.Y - p.Y}
	}
	return out
}
