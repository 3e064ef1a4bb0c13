package transform

import (
	"sync"

	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/shape"
	"github.com/vexcanvas/vexcanvas/internal/snap"
)

// AxisLockThreshold is the cumulative offset magnitude, in world units,
// at which the locked axis is decided.
const AxisLockThreshold = 5.0

// Engine owns the one active transform session and applies drag, resize
// and rotate mutations through the shape store. Live previews live in
// session state; authoritative shapes change only on commit, and every
// commit invalidates the geometry cache and records a history snapshot.
type Engine struct {
	mu sync.Mutex

	store    *shape.Store
	cache    GeometryCache
	recorder Recorder
	snapCfg  *snap.Config
	detector *snap.Detector
	sched    *FrameScheduler

	kind   SessionKind
	drag   *dragSession
	resize *resizeSession
	rotate *rotateSession

	// Per-gesture snap state.
	snapIndex *snap.Index
	guides    []snap.Guide
	spacing   []snap.Spacing
	lastMatch *snap.Match

	viewScale float64
}

// NewEngine creates an engine bound to the store and collaborators.
// A nil cache or recorder is replaced with a no-op.
func NewEngine(store *shape.Store, cache GeometryCache, recorder Recorder, cfg *snap.Config) *Engine {
	if cache == nil {
		cache = NopCache{}
	}
	if recorder == nil {
		recorder = RecorderFunc(func() {})
	}
	return &Engine{
		store:     store,
		cache:     cache,
		recorder:  recorder,
		snapCfg:   cfg,
		detector:  snap.NewDetector(cfg),
		sched:     NewFrameScheduler(),
		viewScale: 1,
	}
}

// SetViewScale updates the view scale used for adaptive snap radii.
func (e *Engine) SetViewScale(scale float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if scale > 0 {
		e.viewScale = scale
	}
}

// SessionKind returns the kind of the active session.
func (e *Engine) SessionKind() SessionKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kind
}

// ActiveShapeID returns the primary shape id of the active session, or
// empty string. Used as the frame scheduler's guard token.
func (e *Engine) ActiveShapeID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeShapeIDLocked()
}

func (e *Engine) activeShapeIDLocked() string {
	switch e.kind {
	case SessionDrag:
		if len(e.drag.shapeIDs) > 0 {
			return e.drag.shapeIDs[0]
		}
	case SessionResize:
		return e.resize.shapeID
	case SessionRotate:
		if len(e.rotate.shapeIDs) > 0 {
			return e.rotate.shapeIDs[0]
		}
	}
	return ""
}

// Guides returns the alignment guides computed by the last deferred
// pass. Visual only; cleared on gesture end.
func (e *Engine) Guides() []snap.Guide {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.guides
}

// Spacing returns the spacing measurements from the last deferred pass.
func (e *Engine) Spacing() []snap.Spacing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spacing
}

// SnapMatch returns the active magnetic match, if any, so frontends can
// render a snapped indicator.
func (e *Engine) SnapMatch() (snap.Match, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastMatch == nil {
		return snap.Match{}, false
	}
	return *e.lastMatch, true
}

// FlushFrame runs the deferred snap/alignment pass if one is pending
// and still belongs to the active gesture. The frontend calls this once
// per rendered frame.
func (e *Engine) FlushFrame() {
	e.sched.Flush(e.ActiveShapeID())
}

// Teardown aborts any active session without committing, invalidates
// cached geometry for shapes that had live previews, and drops pending
// deferred work. Mode transitions call this so no ghost geometry
// survives a tool switch.
func (e *Engine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardownLocked()
}

func (e *Engine) teardownLocked() {
	switch e.kind {
	case SessionDrag:
		for _, id := range e.drag.shapeIDs {
			e.cache.Invalidate(id)
		}
	case SessionResize:
		e.cache.Invalidate(e.resize.shapeID)
	case SessionRotate:
		for _, id := range e.rotate.shapeIDs {
			e.cache.Invalidate(id)
		}
	}
	e.kind = SessionNone
	e.drag = nil
	e.resize = nil
	e.rotate = nil
	e.snapIndex = nil
	e.clearFeedbackLocked()
	e.sched.Cancel()
}

func (e *Engine) clearFeedbackLocked() {
	e.guides = nil
	e.spacing = nil
	e.lastMatch = nil
}

// operationSet resolves the shapes a gesture moves: the selection if the
// hit shape is selected (or the selection is non-empty and contains it),
// otherwise just the hit shape. Locked shapes are excluded entirely so
// they never move.
func (e *Engine) operationSet(shapeID string) ([]string, map[string]originalShape) {
	ids := e.store.Selection()
	if len(ids) == 0 || !e.store.IsSelected(shapeID) {
		ids = []string{shapeID}
	}

	// Group membership pulls in the rest of the group.
	seen := make(map[string]bool, len(ids))
	var expanded []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		expanded = append(expanded, id)
		if s := e.store.Get(id); s != nil && s.GroupID != "" {
			for _, member := range e.store.GroupMembers(s.GroupID) {
				if !seen[member] {
					seen[member] = true
					expanded = append(expanded, member)
				}
			}
		}
	}

	var kept []string
	originals := make(map[string]originalShape, len(expanded))
	for _, id := range expanded {
		s := e.store.Get(id)
		if s == nil || s.Locked {
			continue
		}
		kept = append(kept, id)
		originals[id] = captureOriginal(s)
	}
	return kept, originals
}

// movingFeatures collects candidate feature points for the moving set
// displaced by offset.
func (e *Engine) movingFeatures(ids []string, originals map[string]originalShape, offset geom.Point) []shape.Feature {
	var out []shape.Feature
	for _, id := range ids {
		s := e.store.Get(id)
		if s == nil {
			continue
		}
		moved := s.Clone()
		moved.Points = geom.TranslateAll(originals[id].points, offset)
		out = append(out, moved.Features()...)
	}
	return out
}

func excludeSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
