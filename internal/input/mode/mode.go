package mode

// Mode defines the interface for editor tool modes. Each mode determines
// how pointer gestures are interpreted and which snap types are active.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "select", "resize").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// Enter is called when entering this mode. Returning an error vetoes
	// the transition; the manager leaves the current mode in place.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode. Cleanup of live-preview
	// state belongs here so no ghost geometry survives the switch.
	Exit(ctx *Context) error
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string

	// TargetShapeID is the shape the transition targets, if any.
	TargetShapeID string

	// Editor provides read-only access to editor state for guards.
	Editor EditorState

	// Extra holds mode-specific context data.
	Extra map[string]any
}

// NewContext creates a new mode context.
func NewContext() *Context {
	return &Context{
		Extra: make(map[string]any),
	}
}

// WithTarget returns a copy of the context targeting the given shape.
func (c *Context) WithTarget(shapeID string) *Context {
	copy := *c
	copy.TargetShapeID = shapeID
	return &copy
}

// EditorState is the read-only view of editor state the transition
// guards consume.
type EditorState interface {
	// SelectionCount returns the number of selected shapes.
	SelectionCount() int

	// IsLocked reports whether the shape with the given id is locked.
	// Unknown ids report true so guards fail closed.
	IsLocked(shapeID string) bool
}

// Standard mode names. Select is the steady state reached after every
// gesture commits or cancels; there is no terminal state.
const (
	ModeSelect   = "select"
	ModeEdit     = "edit"
	ModeResize   = "resize"
	ModeRotate   = "rotate"
	ModeMeasure  = "measure"
	ModeLineDraw = "line-draw"
)
