package transform

import (
	"errors"

	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// Engine errors.
var (
	// ErrSessionActive indicates another transform session is in flight.
	ErrSessionActive = errors.New("transform session already active")

	// ErrNoSession indicates no session is in flight.
	ErrNoSession = errors.New("no active transform session")

	// ErrShapeLocked indicates the target shape is locked. Treated as a
	// routine UI race by callers, not an exceptional condition.
	ErrShapeLocked = errors.New("shape is locked")

	// ErrNothingToTransform indicates the operation set is empty after
	// filtering locked shapes.
	ErrNothingToTransform = errors.New("nothing to transform")
)

// SessionKind tags the active session variant.
type SessionKind uint8

// Session kinds. At most one session is active at a time; starting one
// fully tears down any other.
const (
	SessionNone SessionKind = iota
	SessionDrag
	SessionResize
	SessionRotate
)

// String returns a human-readable session kind.
func (k SessionKind) String() string {
	switch k {
	case SessionDrag:
		return "drag"
	case SessionResize:
		return "resize"
	case SessionRotate:
		return "rotate"
	case SessionNone:
		return "none"
	default:
		return "unknown"
	}
}

// GeometryCache is the external cache collaborator. It must be called
// synchronously whenever a shape's points or rotation change, and when
// a mode exits leaving stale live-preview geometry.
type GeometryCache interface {
	Invalidate(shapeID string)
	InvalidateAll()
}

// NopCache is a GeometryCache that does nothing.
type NopCache struct{}

// Invalidate implements GeometryCache.
func (NopCache) Invalidate(string) {}

// InvalidateAll implements GeometryCache.
func (NopCache) InvalidateAll() {}

// Recorder is asked to snapshot history after every committed mutation.
type Recorder interface {
	Record()
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func()

// Record implements Recorder.
func (f RecorderFunc) Record() { f() }

// originalShape is the pre-gesture geometry captured per shape so that
// live updates never touch authoritative state and cancel restores it
// exactly.
type originalShape struct {
	points   []geom.Point
	rotation *shape.Rotation
}

func captureOriginal(s *shape.Shape) originalShape {
	o := originalShape{points: make([]geom.Point, len(s.Points))}
	copy(o.points, s.Points)
	if s.Rotation != nil {
		r := *s.Rotation
		o.rotation = &r
	}
	return o
}

// dragSession holds live drag state.
type dragSession struct {
	shapeIDs  []string
	start     geom.Point
	current   geom.Point
	originals map[string]originalShape

	lockedAxis geom.Axis // decided at most once per gesture
	snapDelta  geom.Point
	snapped    bool
}

// HandleKind distinguishes corner from edge resize handles.
type HandleKind uint8

// Resize handle kinds.
const (
	HandleCorner HandleKind = iota
	HandleEdge
)

// Handle identifies a resize handle on a shape's bounding box:
// corners are indexed 0..3 clockwise from the minimum corner, edges
// 0..3 starting at the bottom edge.
type Handle struct {
	Kind  HandleKind
	Index int
}

// resizeSession holds live resize state. livePoints is the ephemeral
// overlay; the committed shape is untouched until Finish.
type resizeSession struct {
	shapeID    string
	handle     Handle
	original   originalShape
	origBounds geom.Rect
	livePoints []geom.Point
	hasLive    bool
	snapped    bool
}

// rotateSession holds live rotate state.
type rotateSession struct {
	shapeIDs  []string
	pivot     geom.Point
	liveAngle float64
	originals map[string]originalShape
}
