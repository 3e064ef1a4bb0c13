package transform

import (
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// StartRotate begins a rotation gesture around pivot for the current
// selection (or the given shape if nothing is selected). The current
// rotation of every member is captured before any mutation so a cancel
// restores it exactly.
func (e *Engine) StartRotate(shapeID string, pivot geom.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionNone {
		e.teardownLocked()
	}

	ids, originals := e.operationSet(shapeID)
	if len(ids) == 0 {
		return ErrNothingToTransform
	}

	e.kind = SessionRotate
	e.rotate = &rotateSession{
		shapeIDs:  ids,
		pivot:     pivot,
		originals: originals,
	}
	return nil
}

// RotateLive updates only session-visible state for the preview frame.
// The authoritative shapes are untouched.
func (e *Engine) RotateLive(angle float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionRotate {
		return ErrNoSession
	}
	if !geom.Pt(angle, 0).IsFinite() {
		return nil
	}
	e.rotate.liveAngle = angle
	for _, id := range e.rotate.shapeIDs {
		e.cache.Invalidate(id)
	}
	return nil
}

// LiveAngle returns the current preview rotation delta.
func (e *Engine) LiveAngle() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.kind != SessionRotate {
		return 0, false
	}
	return e.rotate.liveAngle, true
}

// Rotate commits the rotation by delta radians around the session pivot
// and is the only call that triggers a history snapshot.
//
// Each member shape's centroid is rotated around the pivot, the member
// is translated by the resulting offset, and its own rotation angle is
// advanced by the same delta with its center moved to the rotated
// centroid. Heterogeneous shapes therefore rotate as a rigid body; the
// rotation itself stays metadata and is never baked into point lists.
func (e *Engine) Rotate(delta float64) error {
	e.mu.Lock()

	if e.kind != SessionRotate {
		e.mu.Unlock()
		return ErrNoSession
	}
	if !geom.Pt(delta, 0).IsFinite() {
		e.mu.Unlock()
		return nil
	}
	r := e.rotate

	for _, id := range r.shapeIDs {
		s := e.store.Get(id)
		if s == nil {
			continue
		}
		orig := r.originals[id]
		rotateShapeLocked(s, orig, r.pivot, delta)
		e.cache.Invalidate(id)
	}

	e.kind = SessionNone
	e.rotate = nil
	e.clearFeedbackLocked()
	e.mu.Unlock()

	e.recorder.Record()
	return nil
}

// CancelRotate restores every member's captured rotation and points
// exactly and discards the session.
func (e *Engine) CancelRotate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionRotate {
		return ErrNoSession
	}
	for _, id := range e.rotate.shapeIDs {
		s := e.store.Get(id)
		if s == nil {
			continue
		}
		orig := e.rotate.originals[id]
		s.SetPoints(orig.points)
		if orig.rotation != nil {
			rot := *orig.rotation
			s.Rotation = &rot
		} else {
			s.Rotation = nil
		}
		e.cache.Invalidate(id)
	}
	e.kind = SessionNone
	e.rotate = nil
	e.clearFeedbackLocked()
	return nil
}

// rotateShapeLocked applies the rigid-body rotation step to one shape
// from its captured original.
func rotateShapeLocked(s *shape.Shape, orig originalShape, pivot geom.Point, delta float64) {
	centroid := geom.Centroid(orig.points)
	rotated := centroid.RotateAround(pivot, delta)
	offset := rotated.Sub(centroid)

	s.SetPoints(geom.TranslateAll(orig.points, offset))

	angle := delta
	if orig.rotation != nil {
		angle += orig.rotation.Angle
	}
	s.Rotation = &shape.Rotation{Angle: angle, Center: rotated}
}
