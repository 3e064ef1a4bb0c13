package shape

import "github.com/vexcanvas/vexcanvas/internal/geom"

// FeatureKind classifies a candidate snap feature on a shape.
type FeatureKind string

// Feature kinds. These mirror the snap point types the detector indexes.
const (
	FeatureEndpoint FeatureKind = "endpoint"
	FeatureMidpoint FeatureKind = "midpoint"
	FeatureCenter   FeatureKind = "center"
)

// Feature is a named point on a shape that can participate in snapping.
type Feature struct {
	Kind     FeatureKind
	Position geom.Point
}

// Features returns the shape's snap-relevant points: its corners or
// endpoints, the midpoint of every edge, and the centroid.
//
// For a 2-point rectangle the four corners are synthesized from the two
// stored opposite corners. Circles contribute their center and the radius
// point. Polylines and lines contribute segment midpoints so midpoint
// indicators and midpoint snapping work on open paths too.
func (s *Shape) Features() []Feature {
	switch {
	case s.IsTwoPointRectangle():
		return rectFeatures(s.Bounds())
	case s.Kind == KindCircle && len(s.Points) == 2:
		return []Feature{
			{Kind: FeatureCenter, Position: s.Points[0]},
			{Kind: FeatureEndpoint, Position: s.Points[1]},
		}
	default:
		return pathFeatures(s.Points, s.Kind == KindPolygon || s.IsFourPointRectangle())
	}
}

func rectFeatures(b geom.Rect) []Feature {
	corners := b.Corners()
	features := make([]Feature, 0, 9)
	for _, c := range corners {
		features = append(features, Feature{Kind: FeatureEndpoint, Position: c})
	}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		features = append(features, Feature{Kind: FeatureMidpoint, Position: c.Midpoint(next)})
	}
	features = append(features, Feature{Kind: FeatureCenter, Position: b.Center()})
	return features
}

func pathFeatures(points []geom.Point, closed bool) []Feature {
	if len(points) == 0 {
		return nil
	}
	features := make([]Feature, 0, 2*len(points)+1)
	for _, p := range points {
		features = append(features, Feature{Kind: FeatureEndpoint, Position: p})
	}
	last := len(points) - 1
	for i := 0; i < last; i++ {
		features = append(features, Feature{
			Kind:     FeatureMidpoint,
			Position: points[i].Midpoint(points[i+1]),
		})
	}
	if closed && len(points) > 2 {
		features = append(features, Feature{
			Kind:     FeatureMidpoint,
			Position: points[last].Midpoint(points[0]),
		})
	}
	features = append(features, Feature{Kind: FeatureCenter, Position: geom.Centroid(points)})
	return features
}
