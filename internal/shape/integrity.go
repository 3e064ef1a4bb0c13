package shape

import "github.com/vexcanvas/vexcanvas/internal/geom"

// RepairResult summarizes what an integrity pass changed.
type RepairResult struct {
	Dropped  []string // ids of shapes removed for non-finite geometry
	Repaired []string // ids of shapes whose rotation metadata was cleaned
}

// Repair runs the structural repair pass used after a history restore.
//
// Rectangles are kept in whichever point-count encoding they were
// serialized in; 2-point and 4-point forms are never interchanged here.
// Polygons and polylines pass through unmodified. Shapes carrying
// non-finite coordinates are dropped wholesale, and rotation metadata
// with a non-finite angle or center is stripped rather than guessed at.
func Repair(shapes []*Shape) ([]*Shape, RepairResult) {
	var res RepairResult
	out := make([]*Shape, 0, len(shapes))
	for _, s := range shapes {
		if !geom.AllFinite(s.Points) {
			res.Dropped = append(res.Dropped, s.ID)
			continue
		}
		if s.Rotation != nil && !rotationFinite(s.Rotation) {
			s.Rotation = nil
			res.Repaired = append(res.Repaired, s.ID)
		}
		out = append(out, s)
	}
	return out, res
}

// ValidEncoding reports whether the shape's point count is structurally
// legal for its kind. Rectangles must hold exactly 2 or 4 points.
func ValidEncoding(s *Shape) bool {
	switch s.Kind {
	case KindRectangle:
		return len(s.Points) == 2 || len(s.Points) == 4
	case KindCircle, KindLine:
		return len(s.Points) == 2
	case KindPolygon:
		return len(s.Points) >= 3
	case KindPolyline:
		return len(s.Points) >= 2
	default:
		return len(s.Points) > 0
	}
}

func rotationFinite(r *Rotation) bool {
	return geom.Pt(r.Angle, 0).IsFinite() && r.Center.IsFinite()
}
