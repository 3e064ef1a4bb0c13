package snap

import (
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// Match is the winning candidate/target pair from a detection pass.
// Delta is the magnetic correction that moves the candidate feature
// exactly onto the target.
type Match struct {
	Moving geom.Point
	Target Point
	Delta  geom.Point
}

// Detector finds the best snap match for a moving shape against the
// rest of the canvas. It consumes the snap configuration read-only.
type Detector struct {
	cfg *Config
}

// NewDetector creates a detector bound to the given configuration.
func NewDetector(cfg *Config) *Detector {
	return &Detector{cfg: cfg}
}

// BuildIndex indexes the snap features of the given shapes. Shapes whose
// ids appear in exclude (the moving set) contribute nothing. Segment
// intersections are only computed when the intersection type is active,
// since they are quadratic in the segment count.
func (d *Detector) BuildIndex(others []*shape.Shape, exclude map[string]bool) *Index {
	ix := NewIndex(d.cfg.Radius * 2)
	for _, s := range others {
		if exclude[s.ID] || s.Locked {
			continue
		}
		for _, f := range s.Features() {
			ix.Insert(Point{
				Position:      f.Position,
				Type:          featureType(f.Kind),
				SourceShapeID: s.ID,
			})
		}
	}
	if d.cfg.ActiveTypes[TypeIntersection] {
		d.indexIntersections(ix, others, exclude)
	}
	if d.cfg.ActiveTypes[TypeEdge] {
		for _, s := range others {
			if exclude[s.ID] || s.Locked {
				continue
			}
			for _, sg := range edgeSegments(s) {
				ix.InsertSegment(Segment{A: sg[0], B: sg[1], SourceShapeID: s.ID})
			}
		}
	}
	return ix
}

// Detect returns the single minimum-distance pair among all candidate
// feature points and indexed targets within the effective radius. Grid
// intersections are considered analytically alongside indexed points,
// so edge-to-edge and corner-to-corner snapping both work, not merely
// centroid snapping.
func (d *Detector) Detect(candidates []shape.Feature, ix *Index, exclude map[string]bool, viewScale float64) (Match, bool) {
	if !d.cfg.Enabled {
		return Match{}, false
	}
	radius := d.cfg.EffectiveRadius(viewScale)

	var best Match
	bestDist := radius
	found := false

	for _, c := range candidates {
		if target, ok := ix.Nearest(c.Position, radius, d.cfg.ActiveTypes, exclude); ok {
			dist := c.Position.Distance(target.Position)
			if !found || dist < bestDist {
				best = Match{
					Moving: c.Position,
					Target: target,
					Delta:  target.Position.Sub(c.Position),
				}
				bestDist = dist
				found = true
			}
		}
		if d.cfg.ActiveTypes[TypeGrid] {
			g, dist := NearestGridPoint(c.Position, d.cfg.GridSpacing)
			if dist <= radius && (!found || dist < bestDist) {
				best = Match{
					Moving: c.Position,
					Target: Point{Position: g, Type: TypeGrid},
					Delta:  g.Sub(c.Position),
				}
				bestDist = dist
				found = true
			}
		}
		if d.cfg.ActiveTypes[TypeEdge] {
			if target, ok := ix.NearestOnEdge(c.Position, radius, exclude); ok {
				dist := c.Position.Distance(target.Position)
				if !found || dist < bestDist {
					best = Match{
						Moving: c.Position,
						Target: target,
						Delta:  target.Position.Sub(c.Position),
					}
					bestDist = dist
					found = true
				}
			}
		}
	}
	return best, found
}

func featureType(k shape.FeatureKind) Type {
	switch k {
	case shape.FeatureMidpoint:
		return TypeMidpoint
	case shape.FeatureCenter:
		return TypeCenter
	default:
		return TypeEndpoint
	}
}

// edgeSegments returns a shape's outline segments for on-edge snapping.
// Circles have no straight edges and contribute nothing.
func edgeSegments(s *shape.Shape) [][2]geom.Point {
	var pts []geom.Point
	closed := false
	switch {
	case s.IsTwoPointRectangle():
		pts = geom.RectFromPoints(s.Points).Corners()
		closed = true
	case s.Kind == shape.KindRectangle, s.Kind == shape.KindPolygon:
		pts = s.Points
		closed = true
	case s.Kind == shape.KindLine, s.Kind == shape.KindPolyline:
		pts = s.Points
	default:
		return nil
	}

	var segs [][2]geom.Point
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, [2]geom.Point{pts[i], pts[i+1]})
	}
	if closed && len(pts) > 2 {
		segs = append(segs, [2]geom.Point{pts[len(pts)-1], pts[0]})
	}
	return segs
}

// indexIntersections adds pairwise segment intersections between
// line-like shapes to the index.
func (d *Detector) indexIntersections(ix *Index, others []*shape.Shape, exclude map[string]bool) {
	type seg struct {
		a, b geom.Point
		id   string
	}
	var segs []seg
	for _, s := range others {
		if exclude[s.ID] || s.Locked {
			continue
		}
		switch s.Kind {
		case shape.KindLine, shape.KindPolyline, shape.KindPolygon:
		default:
			continue
		}
		pts := s.Points
		for i := 0; i+1 < len(pts); i++ {
			segs = append(segs, seg{pts[i], pts[i+1], s.ID})
		}
		if s.Kind == shape.KindPolygon && len(pts) > 2 {
			segs = append(segs, seg{pts[len(pts)-1], pts[0], s.ID})
		}
	}

	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			if segs[i].id == segs[j].id {
				continue
			}
			if p, ok := segmentIntersection(segs[i].a, segs[i].b, segs[j].a, segs[j].b); ok {
				ix.Insert(Point{Position: p, Type: TypeIntersection})
			}
		}
	}
}

// segmentIntersection returns the intersection of segments ab and cd,
// if they cross. Parallel and collinear segments report no intersection.
func segmentIntersection(a, b, c, d geom.Point) (geom.Point, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.X*s.Y - r.Y*s.X
	if denom == 0 {
		return geom.Point{}, false
	}
	ac := c.Sub(a)
	t := (ac.X*s.Y - ac.Y*s.X) / denom
	u := (ac.X*r.Y - ac.Y*r.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return geom.Point{}, false
	}
	return a.Add(r.Mul(t)), true
}
