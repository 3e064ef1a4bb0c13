package snap

import (
	"math"

	"github.com/vexcanvas/vexcanvas/internal/geom"
)

// Point is a candidate snap anchor. Produced transiently per query;
// never persisted.
type Point struct {
	Position      geom.Point
	Type          Type
	SourceShapeID string
}

// Segment is an outline edge kept for on-edge projection queries.
// Unlike bucketed points, the nearest point on an edge depends on the
// query position, so segments are scanned linearly.
type Segment struct {
	A, B          geom.Point
	SourceShapeID string
}

// Index is a uniform grid-bucket spatial index over candidate snap
// points, supporting nearest-neighbor queries within a radius.
//
// Grid intersections are not stored; they are synthesized analytically
// during queries since the nearest grid point is directly computable.
type Index struct {
	cellSize float64
	buckets  map[cellKey][]Point
	segments []Segment
}

type cellKey struct{ x, y int }

// keyFor maps a world position to its bucket cell.
func (ix *Index) keyFor(p geom.Point) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / ix.cellSize)),
		y: int(math.Floor(p.Y / ix.cellSize)),
	}
}

// NewIndex creates an index with the given bucket cell size. The cell
// size should be at least the largest query radius for single-ring
// correctness; queries widen the scan when it is not.
func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = 16
	}
	return &Index{
		cellSize: cellSize,
		buckets:  make(map[cellKey][]Point),
	}
}

// Insert adds a snap point to the index.
func (ix *Index) Insert(p Point) {
	k := ix.keyFor(p.Position)
	ix.buckets[k] = append(ix.buckets[k], p)
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	n := 0
	for _, b := range ix.buckets {
		n += len(b)
	}
	return n
}

// InsertSegment adds an outline edge for on-edge queries.
func (ix *Index) InsertSegment(s Segment) {
	ix.segments = append(ix.segments, s)
}

// Clear drops all indexed points and segments.
func (ix *Index) Clear() {
	ix.buckets = make(map[cellKey][]Point)
	ix.segments = nil
}

// Nearest returns the closest indexed point to pos within radius whose
// type is enabled in active, and whose source shape is not excluded.
func (ix *Index) Nearest(pos geom.Point, radius float64, active TypeSet, exclude map[string]bool) (Point, bool) {
	if radius <= 0 {
		return Point{}, false
	}

	span := int(math.Ceil(radius/ix.cellSize)) + 1
	center := ix.keyFor(pos)

	best := Point{}
	bestDist := radius
	found := false
	for dx := -span; dx <= span; dx++ {
		for dy := -span; dy <= span; dy++ {
			k := cellKey{center.x + dx, center.y + dy}
			for _, p := range ix.buckets[k] {
				if !active[p.Type] {
					continue
				}
				if p.SourceShapeID != "" && exclude[p.SourceShapeID] {
					continue
				}
				d := pos.Distance(p.Position)
				if d <= bestDist && (!found || d < bestDist) {
					best = p
					bestDist = d
					found = true
				}
			}
		}
	}
	return best, found
}

// NearestOnEdge projects pos onto every indexed segment and returns the
// closest on-edge point within radius as an edge-typed snap target.
func (ix *Index) NearestOnEdge(pos geom.Point, radius float64, exclude map[string]bool) (Point, bool) {
	best := Point{}
	bestDist := radius
	found := false
	for _, s := range ix.segments {
		if s.SourceShapeID != "" && exclude[s.SourceShapeID] {
			continue
		}
		p := geom.ClosestOnSegment(pos, s.A, s.B)
		d := pos.Distance(p)
		if d <= bestDist && (!found || d < bestDist) {
			best = Point{Position: p, Type: TypeEdge, SourceShapeID: s.SourceShapeID}
			bestDist = d
			found = true
		}
	}
	return best, found
}

// NearestGridPoint returns the grid intersection closest to pos for the
// given spacing, and its distance.
func NearestGridPoint(pos geom.Point, spacing float64) (geom.Point, float64) {
	if spacing <= 0 {
		return geom.Point{}, math.Inf(1)
	}
	g := geom.Pt(
		math.Round(pos.X/spacing)*spacing,
		math.Round(pos.Y/spacing)*spacing,
	)
	return g, pos.Distance(g)
}
