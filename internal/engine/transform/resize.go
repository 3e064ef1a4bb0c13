package transform

import (
	"math"

	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// MinResizeExtent is the smallest width or height a resize commit may
// produce.
const MinResizeExtent = 1e-6

// StartResize begins a handle-based resize of a single shape. Locked
// shapes are rejected; any other session is torn down first.
func (e *Engine) StartResize(shapeID string, handle Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.store.Get(shapeID)
	if s == nil {
		return shape.ErrShapeNotFound
	}
	if s.Locked {
		return ErrShapeLocked
	}
	if e.kind != SessionNone {
		e.teardownLocked()
	}

	e.kind = SessionResize
	e.resize = &resizeSession{
		shapeID:    shapeID,
		handle:     handle,
		original:   captureOriginal(s),
		origBounds: s.Bounds(),
	}
	e.snapIndex = e.detector.BuildIndex(e.store.Visible(), map[string]bool{shapeID: true})
	return nil
}

// UpdateResize recomputes the live preview for the pointer position.
// The dragged handle snaps to nearby candidates when snapping is
// enabled. Degenerate target boxes simply skip the frame; the previous
// valid live preview persists.
func (e *Engine) UpdateResize(pointer geom.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionResize {
		return ErrNoSession
	}
	r := e.resize

	if !pointer.IsFinite() {
		return nil
	}

	// Magnetic handle: snap the handle's target position itself.
	r.snapped = false
	e.lastMatch = nil
	if m, ok := e.detector.Detect(
		[]shape.Feature{{Kind: shape.FeatureEndpoint, Position: pointer}},
		e.snapIndex,
		map[string]bool{r.shapeID: true},
		e.viewScale,
	); ok {
		pointer = pointer.Add(m.Delta)
		r.snapped = true
		match := m
		e.lastMatch = &match
	}

	target := targetBounds(r.origBounds, r.handle, pointer)
	if target.IsDegenerate(MinResizeExtent) {
		return nil
	}

	scale := geom.BoxScale{From: r.origBounds, To: target}
	r.livePoints = scale.ApplyAll(r.original.points)
	r.hasLive = true
	e.cache.Invalidate(r.shapeID)
	return nil
}

// LiveResizePoints returns the ephemeral preview geometry, if any.
// Intermediate frames never touch the authoritative shape.
func (e *Engine) LiveResizePoints() ([]geom.Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.kind != SessionResize || !e.resize.hasLive {
		return nil, false
	}
	return e.resize.livePoints, true
}

// FinishResize merges the live preview into the committed shape.
// Rectangles are re-normalized to their canonical encoding: a 2-point
// rectangle stays 2-point with the minimum corner first, a 4-point
// rectangle keeps its explicit corners. If the shape carries a rotation
// its center is recomputed from the new geometry so the rotation keeps
// pivoting correctly. Commits exactly one history snapshot.
func (e *Engine) FinishResize() error {
	e.mu.Lock()

	if e.kind != SessionResize {
		e.mu.Unlock()
		return ErrNoSession
	}
	r := e.resize

	committed := false
	if r.hasLive && geom.AllFinite(r.livePoints) {
		s := e.store.Get(r.shapeID)
		if s != nil {
			points := r.livePoints
			if s.IsTwoPointRectangle() {
				b := geom.RectFromPoints(points)
				points = []geom.Point{
					{X: b.MinX, Y: b.MinY},
					{X: b.MaxX, Y: b.MaxY},
				}
			}
			s.SetPoints(points)
			if s.Rotation != nil {
				s.Rotation.Center = s.Centroid()
			}
			e.cache.Invalidate(s.ID)
			committed = true
		}
	}

	e.kind = SessionNone
	e.resize = nil
	e.snapIndex = nil
	e.clearFeedbackLocked()
	e.sched.Cancel()
	e.mu.Unlock()

	if committed {
		e.recorder.Record()
	}
	return nil
}

// CancelResize discards the live preview without mutating the shape.
func (e *Engine) CancelResize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.kind != SessionResize {
		return ErrNoSession
	}
	e.teardownLocked()
	return nil
}

// ResizeSelection performs a multi-selection resize from the shared
// original bounding box to the target box. Uniform scaling preserves
// each point's normalized position inside a uniformly scaled box, which
// keeps inter-shape spacing; non-uniform scaling interpolates each axis
// independently. Locked shapes are filtered out of the operation set.
func (e *Engine) ResizeSelection(target geom.Rect) error {
	e.mu.Lock()

	ids := e.store.Selection()
	var working []*shape.Shape
	for _, id := range ids {
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
	if target.IsDegenerate(MinResizeExtent) {
		e.mu.Unlock()
		return nil
	}

	from := working[0].Bounds()
	for _, s := range working[1:] {
		from = from.Union(s.Bounds())
	}
	scale := geom.BoxScale{From: from, To: target}

	for _, s := range working {
		points := scale.ApplyAll(s.Points)
		if !geom.AllFinite(points) {
			continue
		}
		s.SetPoints(points)
		if s.Rotation != nil {
			s.Rotation.Center = s.Centroid()
		}
		e.cache.Invalidate(s.ID)
	}
	e.mu.Unlock()

	e.recorder.Record()
	return nil
}

// targetBounds computes the resized bounding box for a handle dragged
// to the pointer position. Corner handles move two edges, edge handles
// move one.
func targetBounds(orig geom.Rect, h Handle, pointer geom.Point) geom.Rect {
	out := orig
	switch h.Kind {
	case HandleCorner:
		// 0: (min,min) 1: (max,min) 2: (max,max) 3: (min,max)
		switch h.Index % 4 {
		case 0:
			out.MinX, out.MinY = pointer.X, pointer.Y
		case 1:
			out.MaxX, out.MinY = pointer.X, pointer.Y
		case 2:
			out.MaxX, out.MaxY = pointer.X, pointer.Y
		case 3:
			out.MinX, out.MaxY = pointer.X, pointer.Y
		}
	case HandleEdge:
		// 0: bottom 1: right 2: top 3: left
		switch h.Index % 4 {
		case 0:
			out.MinY = pointer.Y
		case 1:
			out.MaxX = pointer.X
		case 2:
			out.MaxY = pointer.Y
		case 3:
			out.MinX = pointer.X
		}
	}
	// A handle dragged past the opposite edge inverts the box; keep the
	// extents ordered so downstream math stays sane.
	if out.MinX > out.MaxX {
		out.MinX, out.MaxX = out.MaxX, out.MinX
	}
	if out.MinY > out.MaxY {
		out.MinY, out.MaxY = out.MaxY, out.MinY
	}
	if math.IsNaN(out.MinX) || math.IsNaN(out.MinY) || math.IsNaN(out.MaxX) || math.IsNaN(out.MaxY) {
		return orig
	}
	return out
}
