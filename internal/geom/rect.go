package geom

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectFromPoints returns the tightest axis-aligned box containing all points.
// Returns an empty Rect for an empty slice.
func RectFromPoints(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: points[0].X, MinY: points[0].Y,
		MaxX: points[0].X, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the center point of the box.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Corners returns the four corners in order: min, (max,min), max, (min,max).
func (r Rect) Corners() []Point {
	return []Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// Translate returns the box shifted by the given offset.
func (r Rect) Translate(d Point) Rect {
	return Rect{
		MinX: r.MinX + d.X, MinY: r.MinY + d.Y,
		MaxX: r.MaxX + d.X, MaxY: r.MaxY + d.Y,
	}
}

// Contains reports whether the point lies inside or on the box boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Union returns the smallest box containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// IsDegenerate reports whether either dimension collapses below eps,
// or the aspect ratio falls outside a sane range.
func (r Rect) IsDegenerate(eps float64) bool {
	w, h := r.Width(), r.Height()
	if w < eps || h < eps {
		return true
	}
	ratio := w / h
	return ratio < 1e-3 || ratio > 1e3
}
