package transform

import (
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// FlipSelection mirrors every unlocked selected shape about the
// selection's shared bounding-box center. One-shot: no session, one
// history snapshot.
func (e *Engine) FlipSelection(horizontal bool) error {
	e.mu.Lock()

	var working []*shape.Shape
	for _, id := range e.store.Selection() {
		s := e.store.Get(id)
		if s == nil || s.Locked {
			continue
		}
		working = append(working, s)
	}
	if len(working) == 0 {
		e.mu.Unlock()
		return ErrNothingToTransform
	}

	bounds := working[0].Bounds()
	for _, s := range working[1:] {
		bounds = bounds.Union(s.Bounds())
	}
	center := bounds.Center()

	for _, s := range working {
		if horizontal {
			s.SetPoints(geom.FlipHorizontal(s.Points, center))
		} else {
			s.SetPoints(geom.FlipVertical(s.Points, center))
		}
		if s.Rotation != nil {
			// Mirroring reverses angular direction; the center mirrors
			// with the geometry.
			s.Rotation.Angle = -s.Rotation.Angle
			if horizontal {
				s.Rotation.Center = geom.Pt(2*center.X-s.Rotation.Center.X, s.Rotation.Center.Y)
			} else {
				s.Rotation.Center = geom.Pt(s.Rotation.Center.X, 2*center.Y-s.Rotation.Center.Y)
			}
		}
		e.cache.Invalidate(s.ID)
	}
	e.mu.Unlock()

	e.recorder.Record()
	return nil
}
