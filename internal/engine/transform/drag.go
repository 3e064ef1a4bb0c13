package transform

import (
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
	"github.com/vexcanvas/vexcanvas/internal/snap"
)

// StartDrag begins a drag gesture at pointer for the given shape,
// capturing original geometry for every shape in the operation set.
// Any other session is torn down first.
func (e *Engine) StartDrag(shapeID string, pointer geom.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionNone {
		e.teardownLocked()
	}

	ids, originals := e.operationSet(shapeID)
	if len(ids) == 0 {
		return ErrNothingToTransform
	}

	e.kind = SessionDrag
	e.drag = &dragSession{
		shapeIDs:  ids,
		start:     pointer,
		current:   pointer,
		originals: originals,
	}
	e.snapIndex = e.detector.BuildIndex(e.store.Visible(), excludeSet(ids))
	return nil
}

// UpdateDrag handles a pointer move during a drag.
//
// The immediate phase runs on every event: it computes the raw offset,
// applies the axis-lock constraint, and echoes the new position into the
// session so the pointer never feels blocked. The deferred phase -- the
// snap query and alignment guide recomputation -- is scheduled to run at
// most once per rendered frame via FlushFrame.
func (e *Engine) UpdateDrag(pointer geom.Point, axisLockHeld bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionDrag {
		return ErrNoSession
	}
	d := e.drag
	d.current = pointer

	offset := pointer.Sub(d.start)
	if axisLockHeld && d.lockedAxis == geom.AxisNone && offset.Length() > AxisLockThreshold {
		// Decided exactly once per gesture; held afterwards even if the
		// dominant direction changes.
		d.lockedAxis = geom.DominantAxis(offset)
	}

	token := d.shapeIDs[0]
	e.sched.Schedule(token, e.deferredDragPass)
	return nil
}

// deferredDragPass recomputes the moving set's feature points, queries
// the detector for the best magnetic match among all other visible
// shapes, and refreshes the alignment guides. Runs at most once per
// frame.
func (e *Engine) deferredDragPass() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionDrag {
		return
	}
	d := e.drag

	// Candidates come from the raw, pre-correction position. Measuring
	// from the already-snapped position would find the feature sitting on
	// its target, record a zero delta, and release the snap on the next
	// frame.
	raw := e.dragOffsetLocked(false)
	candidates := e.movingFeatures(d.shapeIDs, d.originals, raw)
	exclude := excludeSet(d.shapeIDs)

	if m, ok := e.detector.Detect(candidates, e.snapIndex, exclude, e.viewScale); ok {
		d.snapDelta = m.Delta
		d.snapped = true
		match := m
		e.lastMatch = &match
	} else {
		d.snapDelta = geom.Point{}
		d.snapped = false
		e.lastMatch = nil
	}

	// Alignment feedback is independent of snapping and never corrects
	// position. The guides track the displayed (post-correction) bounds.
	offset := e.dragOffsetLocked(true)
	var movingBounds geom.Rect
	first := true
	for _, id := range d.shapeIDs {
		b := geom.RectFromPoints(geom.TranslateAll(d.originals[id].points, offset))
		if first {
			movingBounds = b
			first = false
		} else {
			movingBounds = movingBounds.Union(b)
		}
	}
	e.guides, e.spacing = snap.DetectGuides(
		movingBounds, d.shapeIDs[0], e.store.Visible(), snap.DefaultAlignThreshold)
}

// dragOffsetLocked returns the constrained gesture offset, optionally
// including the magnetic correction.
func (e *Engine) dragOffsetLocked(withSnap bool) geom.Point {
	d := e.drag
	offset := geom.ProjectOntoAxis(d.current.Sub(d.start), d.lockedAxis)
	if withSnap && d.snapped {
		offset = offset.Add(d.snapDelta)
	}
	return offset
}

// DragOffset returns the current live offset for rendering the preview.
func (e *Engine) DragOffset() (geom.Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.kind != SessionDrag {
		return geom.Point{}, false
	}
	return e.dragOffsetLocked(true), true
}

// LockedAxis returns the decided axis-lock constraint, if any.
func (e *Engine) LockedAxis() geom.Axis {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.kind != SessionDrag {
		return geom.AxisNone
	}
	return e.drag.lockedAxis
}

// FinishDrag applies the final offset, including any magnetic
// correction, to every shape's original point set, shifts rotation
// centers by the same offset, clears the session, and commits a history
// snapshot.
func (e *Engine) FinishDrag() error {
	e.mu.Lock()

	if e.kind != SessionDrag {
		e.mu.Unlock()
		return ErrNoSession
	}
	d := e.drag
	offset := e.dragOffsetLocked(true)

	for _, id := range d.shapeIDs {
		s := e.store.Get(id)
		if s == nil {
			continue
		}
		orig := d.originals[id]
		s.SetPoints(geom.TranslateAll(orig.points, offset))
		if orig.rotation != nil {
			s.Rotation = &shape.Rotation{
				Angle:  orig.rotation.Angle,
				Center: orig.rotation.Center.Add(offset),
			}
		}
		e.cache.Invalidate(id)
	}

	e.kind = SessionNone
	e.drag = nil
	e.snapIndex = nil
	e.clearFeedbackLocked()
	e.sched.Cancel()
	e.mu.Unlock()

	e.recorder.Record()
	return nil
}

// CancelDrag discards the session without mutating any shape.
func (e *Engine) CancelDrag() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionDrag {
		return ErrNoSession
	}
	e.teardownLocked()
	return nil
}
