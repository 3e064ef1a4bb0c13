package editor

import (
	"errors"

	"github.com/vexcanvas/vexcanvas/internal/engine/transform"
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/input/mode"
)

// BeginDrag starts moving the hit shape (or the whole selection when
// the hit shape is part of it). Drags run inside the select tool.
func (e *Editor) BeginDrag(shapeID string, pointer geom.Point) error {
	if err := e.engine.StartDrag(shapeID, pointer); err != nil {
		if errors.Is(err, transform.ErrNothingToTransform) {
			e.log.WithShape(shapeID).Debug("drag rejected: nothing movable")
			return nil
		}
		return err
	}
	return nil
}

// DragTo feeds a pointer move into the active drag.
func (e *Editor) DragTo(pointer geom.Point, axisLockHeld bool) error {
	return e.engine.UpdateDrag(pointer, axisLockHeld)
}

// BeginResize enters the resize tool for a single shape and opens the
// handle session. Guard rejections (locked target, multi-selection)
// are silent no-ops.
func (e *Editor) BeginResize(shapeID string, handle transform.Handle) error {
	if err := e.SwitchTool(mode.ModeResize, shapeID); err != nil {
		return err
	}
	if !e.modes.IsMode(mode.ModeResize) {
		return nil
	}
	if err := e.engine.StartResize(shapeID, handle); err != nil {
		_ = e.SwitchTool(mode.ModeSelect, "")
		if errors.Is(err, transform.ErrShapeLocked) {
			e.log.WithShape(shapeID).Debug("resize rejected: shape locked")
			return nil
		}
		return err
	}
	return nil
}

// ResizeTo feeds a pointer move into the active resize.
func (e *Editor) ResizeTo(pointer geom.Point) error {
	return e.engine.UpdateResize(pointer)
}

// BeginRotate enters the rotate tool and opens a rotation session
// around pivot for the selection (or the given shape).
func (e *Editor) BeginRotate(shapeID string, pivot geom.Point) error {
	if err := e.SwitchTool(mode.ModeRotate, shapeID); err != nil {
		return err
	}
	if !e.modes.IsMode(mode.ModeRotate) {
		return nil
	}
	if err := e.engine.StartRotate(shapeID, pivot); err != nil {
		_ = e.SwitchTool(mode.ModeSelect, "")
		if errors.Is(err, transform.ErrNothingToTransform) {
			e.log.Debug("rotate rejected: nothing to rotate")
			return nil
		}
		return err
	}
	return nil
}

// RotateTo previews a rotation angle without committing it.
func (e *Editor) RotateTo(angle float64) error {
	return e.engine.RotateLive(angle)
}

// CommitGesture finishes whichever session is active. Resize and
// rotate return to the select tool afterwards; drag already runs
// there. The engine records exactly one history entry per committed
// gesture.
func (e *Editor) CommitGesture() error {
	switch e.engine.SessionKind() {
	case transform.SessionDrag:
		return e.engine.FinishDrag()
	case transform.SessionResize:
		err := e.engine.FinishResize()
		if serr := e.SwitchTool(mode.ModeSelect, ""); err == nil {
			err = serr
		}
		return err
	case transform.SessionRotate:
		angle, ok := e.engine.LiveAngle()
		if !ok {
			return transform.ErrNoSession
		}
		err := e.engine.Rotate(angle)
		if serr := e.SwitchTool(mode.ModeSelect, ""); err == nil {
			err = serr
		}
		return err
	default:
		return transform.ErrNoSession
	}
}

// CancelGesture discards whichever session is active without mutating
// any shape, then returns to the select tool.
func (e *Editor) CancelGesture() error {
	switch e.engine.SessionKind() {
	case transform.SessionDrag:
		return e.engine.CancelDrag()
	case transform.SessionResize:
		err := e.engine.CancelResize()
		if serr := e.SwitchTool(mode.ModeSelect, ""); err == nil {
			err = serr
		}
		return err
	case transform.SessionRotate:
		err := e.engine.CancelRotate()
		if serr := e.SwitchTool(mode.ModeSelect, ""); err == nil {
			err = serr
		}
		return err
	default:
		return transform.ErrNoSession
	}
}
