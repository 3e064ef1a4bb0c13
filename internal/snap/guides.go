package snap

import (
	"math"

	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// Orientation of an alignment guide.
type Orientation string

// Guide orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Guide is a transient visual line indicating the moving shape shares an
// edge or center coordinate with another shape. Guides never correct
// position; they are recomputed every interaction frame and cleared on
// gesture end.
type Guide struct {
	Orientation Orientation
	Position    float64
	From, To    geom.Point
}

// Spacing is an even-gap measurement between neighbors, reported purely
// for visual feedback.
type Spacing struct {
	Distance        float64
	BetweenShapeIDs [2]string
}

// DefaultAlignThreshold is the coordinate tolerance for guide matches.
const DefaultAlignThreshold = 1.0

// DetectGuides compares the moving bounding box's edges and centers
// against every other visible shape and reports matches within the
// threshold, plus spacing measurements between evenly gapped neighbors.
func DetectGuides(moving geom.Rect, movingID string, others []*shape.Shape, threshold float64) ([]Guide, []Spacing) {
	if threshold <= 0 {
		threshold = DefaultAlignThreshold
	}

	var guides []Guide
	seenV := map[float64]bool{}
	seenH := map[float64]bool{}

	mx := []float64{moving.MinX, moving.Center().X, moving.MaxX}
	my := []float64{moving.MinY, moving.Center().Y, moving.MaxY}

	for _, o := range others {
		if o.ID == movingID {
			continue
		}
		ob := o.Bounds()
		ox := []float64{ob.MinX, ob.Center().X, ob.MaxX}
		oy := []float64{ob.MinY, ob.Center().Y, ob.MaxY}

		for _, a := range mx {
			for _, b := range ox {
				if math.Abs(a-b) <= threshold && !seenV[b] {
					seenV[b] = true
					minY := math.Min(moving.MinY, ob.MinY)
					maxY := math.Max(moving.MaxY, ob.MaxY)
					guides = append(guides, Guide{
						Orientation: Vertical,
						Position:    b,
						From:        geom.Pt(b, minY),
						To:          geom.Pt(b, maxY),
					})
				}
			}
		}
		for _, a := range my {
			for _, b := range oy {
				if math.Abs(a-b) <= threshold && !seenH[b] {
					seenH[b] = true
					minX := math.Min(moving.MinX, ob.MinX)
					maxX := math.Max(moving.MaxX, ob.MaxX)
					guides = append(guides, Guide{
						Orientation: Horizontal,
						Position:    b,
						From:        geom.Pt(minX, b),
						To:          geom.Pt(maxX, b),
					})
				}
			}
		}
	}

	return guides, detectSpacing(moving, movingID, others, threshold)
}

// detectSpacing looks for three-in-a-row even gaps along each axis:
// the gap between the moving box and a neighbor matching the gap between
// that neighbor and the one past it.
func detectSpacing(moving geom.Rect, movingID string, others []*shape.Shape, threshold float64) []Spacing {
	var out []Spacing

	type entry struct {
		id string
		b  geom.Rect
	}
	var horiz []entry
	var vert []entry
	for _, o := range others {
		if o.ID == movingID {
			continue
		}
		ob := o.Bounds()
		if overlaps(moving.MinY, moving.MaxY, ob.MinY, ob.MaxY) {
			horiz = append(horiz, entry{o.ID, ob})
		}
		if overlaps(moving.MinX, moving.MaxX, ob.MinX, ob.MaxX) {
			vert = append(vert, entry{o.ID, ob})
		}
	}

	for i := 0; i < len(horiz); i++ {
		for j := 0; j < len(horiz); j++ {
			if i == j {
				continue
			}
			a, b := horiz[i], horiz[j]
			// moving | a | b left to right
			g1 := a.b.MinX - moving.MaxX
			g2 := b.b.MinX - a.b.MaxX
			if g1 > 0 && g2 > 0 && math.Abs(g1-g2) <= threshold {
				out = append(out, Spacing{Distance: g1, BetweenShapeIDs: [2]string{movingID, a.id}})
			}
		}
	}
	for i := 0; i < len(vert); i++ {
		for j := 0; j < len(vert); j++ {
			if i == j {
				continue
			}
			a, b := vert[i], vert[j]
			g1 := a.b.MinY - moving.MaxY
			g2 := b.b.MinY - a.b.MaxY
			if g1 > 0 && g2 > 0 && math.Abs(g1-g2) <= threshold {
				out = append(out, Spacing{Distance: g1, BetweenShapeIDs: [2]string{movingID, a.id}})
			}
		}
	}
	return out
}

func overlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMin <= bMax && bMin <= aMax
}
