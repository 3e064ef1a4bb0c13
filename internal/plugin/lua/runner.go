package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/vexcanvas/vexcanvas/internal/editor"
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// Runner executes macro scripts against an editor. Each Runner owns
// one Lua state; scripts see a global `canvas` table with the editing
// operations.
type Runner struct {
	ed     *editor.Editor
	state  *lua.LState
	bridge *Bridge
}

// NewRunner creates a runner bound to the editor.
func NewRunner(ed *editor.Editor) *Runner {
	L := lua.NewState()
	r := &Runner{ed: ed, state: L, bridge: NewBridge(L)}
	r.register()
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.state.Close()
}

// Run executes a macro script.
func (r *Runner) Run(script string) error {
	if err := r.state.DoString(script); err != nil {
		return fmt.Errorf("macro failed: %w", err)
	}
	return nil
}

// register installs the canvas table.
func (r *Runner) register() {
	L := r.state
	canvas := L.NewTable()

	fns := map[string]lua.LGFunction{
		"add_rect":        r.addRect,
		"add_line":        r.addLine,
		"select":          r.selectShape,
		"clear_selection": r.clearSelection,
		"move":            r.move,
		"rotate":          r.rotateSelection,
		"flip":            r.flip,
		"undo":            r.undo,
		"redo":            r.redo,
		"reset":           r.reset,
		"get_shape":       r.getShape,
		"shape_count":     r.shapeCount,
		"selection_count": r.selectionCount,
	}
	for name, fn := range fns {
		canvas.RawSetString(name, L.NewFunction(fn))
	}
	L.SetGlobal("canvas", canvas)
}

// addRect(x0, y0, x1, y1) -> id
func (r *Runner) addRect(L *lua.LState) int {
	s := shape.New(shape.KindRectangle, []geom.Point{
		geom.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2))),
		geom.Pt(float64(L.CheckNumber(3)), float64(L.CheckNumber(4))),
	})
	r.ed.AddShape(s)
	L.Push(lua.LString(s.ID))
	return 1
}

// add_line(x0, y0, x1, y1) -> id
func (r *Runner) addLine(L *lua.LState) int {
	s := shape.New(shape.KindLine, []geom.Point{
		geom.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2))),
		geom.Pt(float64(L.CheckNumber(3)), float64(L.CheckNumber(4))),
	})
	r.ed.AddShape(s)
	L.Push(lua.LString(s.ID))
	return 1
}

// select(id)
func (r *Runner) selectShape(L *lua.LState) int {
	id := L.CheckString(1)
	if err := r.ed.Store().Select(id); err != nil {
		L.RaiseError("select: unknown shape %s", id)
	}
	return 0
}

func (r *Runner) clearSelection(L *lua.LState) int {
	r.ed.Store().ClearSelection()
	return 0
}

// move(id, dx, dy) runs a full drag gesture over the shape.
func (r *Runner) move(L *lua.LState) int {
	id := L.CheckString(1)
	dx := float64(L.CheckNumber(2))
	dy := float64(L.CheckNumber(3))

	s := r.ed.Store().Get(id)
	if s == nil {
		L.RaiseError("move: unknown shape %s", id)
		return 0
	}
	start := s.Centroid()
	if err := r.ed.BeginDrag(id, start); err != nil {
		L.RaiseError("move: %v", err)
		return 0
	}
	if err := r.ed.DragTo(start.Add(geom.Pt(dx, dy)), false); err != nil {
		L.RaiseError("move: %v", err)
		return 0
	}
	if err := r.ed.CommitGesture(); err != nil {
		L.RaiseError("move: %v", err)
	}
	return 0
}

// rotate(id, angle) rotates the shape around its centroid.
func (r *Runner) rotateSelection(L *lua.LState) int {
	id := L.CheckString(1)
	angle := float64(L.CheckNumber(2))

	s := r.ed.Store().Get(id)
	if s == nil {
		L.RaiseError("rotate: unknown shape %s", id)
		return 0
	}
	if err := r.ed.BeginRotate(id, s.Centroid()); err != nil {
		L.RaiseError("rotate: %v", err)
		return 0
	}
	if err := r.ed.RotateTo(angle); err != nil {
		L.RaiseError("rotate: %v", err)
		return 0
	}
	if err := r.ed.CommitGesture(); err != nil {
		L.RaiseError("rotate: %v", err)
	}
	return 0
}

// flip(horizontal)
func (r *Runner) flip(L *lua.LState) int {
	if err := r.ed.FlipSelection(L.CheckBool(1)); err != nil {
		L.RaiseError("flip: %v", err)
	}
	return 0
}

func (r *Runner) undo(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Undo() == nil))
	return 1
}

func (r *Runner) redo(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Redo() == nil))
	return 1
}

func (r *Runner) reset(L *lua.LState) int {
	if err := r.ed.Reset(); err != nil {
		L.RaiseError("reset: %v", err)
	}
	return 0
}

// get_shape(id) -> table with kind, points, locked, rotation
func (r *Runner) getShape(L *lua.LState) int {
	s := r.ed.Store().Get(L.CheckString(1))
	if s == nil {
		L.Push(lua.LNil)
		return 1
	}

	points := make([]any, len(s.Points))
	for i, p := range s.Points {
		points[i] = map[string]any{"x": p.X, "y": p.Y}
	}
	info := map[string]any{
		"id":     s.ID,
		"kind":   string(s.Kind),
		"locked": s.Locked,
		"points": points,
	}
	if s.Rotation != nil {
		info["rotation"] = map[string]any{
			"angle": s.Rotation.Angle,
			"cx":    s.Rotation.Center.X,
			"cy":    s.Rotation.Center.Y,
		}
	}
	L.Push(r.bridge.ToLuaValue(info))
	return 1
}

func (r *Runner) shapeCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.ed.Store().Count()))
	return 1
}

func (r *Runner) selectionCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.ed.SelectionCount()))
	return 1
}
