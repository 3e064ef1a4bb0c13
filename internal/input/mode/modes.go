package mode

import "fmt"

// baseMode supplies the no-op parts shared by every tool mode.
type baseMode struct {
	name    string
	display string
}

func (b *baseMode) Name() string             { return b.name }
func (b *baseMode) DisplayName() string      { return b.display }
func (b *baseMode) Enter(ctx *Context) error { return nil }
func (b *baseMode) Exit(ctx *Context) error  { return nil }

// SelectMode is the steady-state mode: hit-testing, selection, dragging.
type SelectMode struct {
	baseMode
}

// NewSelectMode creates the select mode.
func NewSelectMode() *SelectMode {
	return &SelectMode{baseMode{name: ModeSelect, display: "Select"}}
}

// EditMode allows direct vertex editing of a single shape.
type EditMode struct {
	baseMode
}

// NewEditMode creates the edit mode.
func NewEditMode() *EditMode {
	return &EditMode{baseMode{name: ModeEdit, display: "Edit"}}
}

// CanEnter requires an unlocked target shape.
func (m *EditMode) CanEnter(ctx *Context) error {
	if ctx.TargetShapeID == "" || ctx.Editor == nil {
		return fmt.Errorf("%w: edit requires a target shape", ErrIllegalTransition)
	}
	if ctx.Editor.IsLocked(ctx.TargetShapeID) {
		return fmt.Errorf("%w: target shape is locked", ErrIllegalTransition)
	}
	return nil
}

// ResizeMode is the handle-based single-shape resize gesture.
type ResizeMode struct {
	baseMode
}

// NewResizeMode creates the resize mode.
func NewResizeMode() *ResizeMode {
	return &ResizeMode{baseMode{name: ModeResize, display: "Resize"}}
}

// CanEnter enforces the resize entry guards: current mode must be
// select, the target unlocked, and the selection must not hold more
// than one shape. Multi-selection resize goes through the bounding-box
// engine, not per-shape resize.
func (m *ResizeMode) CanEnter(ctx *Context) error {
	if ctx.PreviousMode != ModeSelect {
		return fmt.Errorf("%w: resize only enters from select", ErrIllegalTransition)
	}
	if ctx.TargetShapeID == "" || ctx.Editor == nil {
		return fmt.Errorf("%w: resize requires a target shape", ErrIllegalTransition)
	}
	if ctx.Editor.IsLocked(ctx.TargetShapeID) {
		return fmt.Errorf("%w: target shape is locked", ErrIllegalTransition)
	}
	if ctx.Editor.SelectionCount() > 1 {
		return fmt.Errorf("%w: resize rejects multi-selection", ErrIllegalTransition)
	}
	return nil
}

// RotateMode is the rotation gesture.
type RotateMode struct {
	baseMode
}

// NewRotateMode creates the rotate mode.
func NewRotateMode() *RotateMode {
	return &RotateMode{baseMode{name: ModeRotate, display: "Rotate"}}
}

// CanEnter requires entry from select with an unlocked target.
// Multi-selection rotation is allowed; the engine rotates the group as
// a rigid body.
func (m *RotateMode) CanEnter(ctx *Context) error {
	if ctx.PreviousMode != ModeSelect {
		return fmt.Errorf("%w: rotate only enters from select", ErrIllegalTransition)
	}
	if ctx.TargetShapeID == "" || ctx.Editor == nil {
		return fmt.Errorf("%w: rotate requires a target shape", ErrIllegalTransition)
	}
	if ctx.Editor.IsLocked(ctx.TargetShapeID) {
		return fmt.Errorf("%w: target shape is locked", ErrIllegalTransition)
	}
	return nil
}

// MeasureMode is the measuring tool.
type MeasureMode struct {
	baseMode
}

// NewMeasureMode creates the measure mode.
func NewMeasureMode() *MeasureMode {
	return &MeasureMode{baseMode{name: ModeMeasure, display: "Measure"}}
}

// LineDrawMode is the line drawing tool.
type LineDrawMode struct {
	baseMode
}

// NewLineDrawMode creates the line-draw mode.
func NewLineDrawMode() *LineDrawMode {
	return &LineDrawMode{baseMode{name: ModeLineDraw, display: "Draw Line"}}
}

// RegisterDefaults registers every standard tool mode on the manager and
// makes select the initial mode.
func RegisterDefaults(m *Manager) error {
	m.Register(NewSelectMode())
	m.Register(NewEditMode())
	m.Register(NewResizeMode())
	m.Register(NewRotateMode())
	m.Register(NewMeasureMode())
	m.Register(NewLineDrawMode())
	return m.SetInitialMode(ModeSelect)
}
