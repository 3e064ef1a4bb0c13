// Package editor wires the shape store, mode machine, transform engine
// and history stack into one embeddable editing core. Frontends drive
// it with pointer gestures and frame ticks; scripts drive it through
// the Lua surface.
package editor

import (
	"errors"
	"sync"

	"github.com/vexcanvas/vexcanvas/internal/app"
	"github.com/vexcanvas/vexcanvas/internal/engine/history"
	"github.com/vexcanvas/vexcanvas/internal/engine/transform"
	"github.com/vexcanvas/vexcanvas/internal/event"
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/input/mode"
	"github.com/vexcanvas/vexcanvas/internal/shape"
	"github.com/vexcanvas/vexcanvas/internal/snap"
)

// Editor is the top-level editing core. All methods are safe for use
// from a frontend goroutine plus the scripting surface; internally the
// model stays single-threaded under one mutex.
type Editor struct {
	mu sync.Mutex

	store   *shape.Store
	modes   *mode.Manager
	engine  *transform.Engine
	history *history.Stack
	snapCfg *snap.Config
	cache   transform.GeometryCache
	log     *app.Logger
	events  *event.Bus

	showDimensions bool
	unsubscribe    func()
}

// Option configures an Editor.
type Option func(*options)

type options struct {
	snapCfg        snap.Config
	cache          transform.GeometryCache
	log            *app.Logger
	historyDepth   int
	showDimensions bool
}

// WithSnapConfig sets the initial snap configuration.
func WithSnapConfig(cfg snap.Config) Option {
	return func(o *options) { o.snapCfg = cfg }
}

// WithGeometryCache sets the external geometry cache hook.
func WithGeometryCache(c transform.GeometryCache) Option {
	return func(o *options) { o.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *app.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHistoryDepth caps the number of retained undo entries.
func WithHistoryDepth(n int) Option {
	return func(o *options) { o.historyDepth = n }
}

// WithShowDimensions sets the initial dimension-label preference.
func WithShowDimensions(show bool) Option {
	return func(o *options) { o.showDimensions = show }
}

// New creates an editor with a default layer, the standard tool modes
// registered, and history seeded with the empty initial state.
func New(opts ...Option) (*Editor, error) {
	o := &options{
		snapCfg:        snap.DefaultConfig(),
		cache:          transform.NopCache{},
		log:            app.NullLogger,
		historyDepth:   100,
		showDimensions: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	e := &Editor{
		store:          shape.NewStore(),
		modes:          mode.NewManager(),
		snapCfg:        &o.snapCfg,
		cache:          o.cache,
		log:            o.log.WithComponent("editor"),
		events:         event.NewBus(),
		showDimensions: o.showDimensions,
	}
	e.engine = transform.NewEngine(e.store, e.cache, transform.RecorderFunc(e.record), e.snapCfg)

	if err := mode.RegisterDefaults(e.modes); err != nil {
		return nil, app.NewOperationError("editor.new", "", err)
	}
	e.unsubscribe = e.modes.OnChange(e.onModeChange)

	e.mu.Lock()
	initial := e.snapshotLocked()
	e.mu.Unlock()
	st, err := history.NewStack(initial, o.historyDepth)
	if err != nil {
		return nil, app.NewOperationError("editor.new", "", err)
	}
	e.history = st
	return e, nil
}

// Close detaches the editor from its mode-change subscription.
func (e *Editor) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Store exposes the shape store for read access and direct edits.
func (e *Editor) Store() *shape.Store { return e.store }

// Modes exposes the mode manager.
func (e *Editor) Modes() *mode.Manager { return e.modes }

// Engine exposes the transform engine for gesture updates.
func (e *Editor) Engine() *transform.Engine { return e.engine }

// History exposes the undo stack.
func (e *Editor) History() *history.Stack { return e.history }

// Events exposes the notification bus.
func (e *Editor) Events() *event.Bus { return e.events }

// SnapConfig returns a copy of the current snap configuration.
func (e *Editor) SnapConfig() snap.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := *e.snapCfg
	cfg.ActiveTypes = e.snapCfg.ActiveTypes.Clone()
	return cfg
}

// SetSnapEnabled toggles magnetic snapping. A UI preference; not part
// of undoable document state.
func (e *Editor) SetSnapEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapCfg.Enabled = enabled
}

// SetShowDimensions toggles dimension labels. A UI preference.
func (e *Editor) SetShowDimensions(show bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.showDimensions = show
}

// ShowDimensions reports the dimension-label preference.
func (e *Editor) ShowDimensions() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.showDimensions
}

// SetViewScale informs the snap detector of the current zoom so
// adaptive thresholds track the screen-space feel.
func (e *Editor) SetViewScale(scale float64) {
	e.engine.SetViewScale(scale)
}

// SelectionCount implements mode.EditorState.
func (e *Editor) SelectionCount() int {
	return e.store.SelectionCount()
}

// IsLocked implements mode.EditorState. Unknown ids report locked so
// transition guards fail closed.
func (e *Editor) IsLocked(shapeID string) bool {
	s := e.store.Get(shapeID)
	if s == nil {
		return true
	}
	return s.Locked
}

// SwitchTool changes the active tool mode. Illegal transitions are
// swallowed after a debug log; the frontend treats them as no-ops.
func (e *Editor) SwitchTool(name, targetShapeID string) error {
	ctx := mode.NewContext()
	ctx.TargetShapeID = targetShapeID
	ctx.Editor = e
	if err := e.modes.SwitchWithContext(name, ctx); err != nil {
		if errors.Is(err, mode.ErrIllegalTransition) {
			e.log.Debug("tool switch rejected: %s -> %s", e.modes.CurrentName(), name)
			return nil
		}
		return app.NewOperationError("editor.switch-tool", name, err)
	}
	return nil
}

// ActiveTool returns the current mode name.
func (e *Editor) ActiveTool() string {
	return e.modes.CurrentName()
}

// onModeChange tears down any live session left by the old mode and
// retunes the active snap types for the new tool.
func (e *Editor) onModeChange(_, to mode.Mode) {
	e.engine.Teardown()
	e.mu.Lock()
	e.snapCfg.ActiveTypes = snap.ForTool(to.Name())
	e.mu.Unlock()
	e.log.WithTool(to.Name()).Debug("snap types retuned")
}

// AddShape inserts a shape on the active layer and records history.
func (e *Editor) AddShape(s *shape.Shape) {
	if s.LayerID == "" {
		s.LayerID = e.store.ActiveLayer()
	}
	e.store.Add(s)
	e.cache.Invalidate(s.ID)
	e.events.Publish(event.TopicShapeAdded, s.ID)
	e.record()
}

// DeleteSelection removes every selected shape and records history.
func (e *Editor) DeleteSelection() int {
	ids := e.store.Selection()
	removed := 0
	for _, id := range ids {
		if s := e.store.Get(id); s != nil && s.Locked {
			continue
		}
		if err := e.store.Remove(id); err == nil {
			e.cache.Invalidate(id)
			e.events.Publish(event.TopicShapeRemoved, id)
			removed++
		}
	}
	if removed > 0 {
		e.record()
	}
	return removed
}

// GroupSelection groups the current selection and records history.
func (e *Editor) GroupSelection() (string, error) {
	gid, err := e.store.Group(e.store.Selection())
	if err != nil {
		return "", app.NewOperationError("editor.group", "", err)
	}
	e.record()
	return gid, nil
}

// Ungroup dissolves a group and records history.
func (e *Editor) Ungroup(groupID string) {
	e.store.Ungroup(groupID)
	e.record()
}

// ApplyBooleanResult merges the output of an external boolean engine:
// consumed source shapes are removed, produced shapes inserted, the
// result selected, and one history entry recorded.
func (e *Editor) ApplyBooleanResult(consumed []string, produced []*shape.Shape) {
	for _, id := range consumed {
		if err := e.store.Remove(id); err == nil {
			e.cache.Invalidate(id)
		}
	}
	ids := make([]string, 0, len(produced))
	for _, s := range produced {
		if s.LayerID == "" {
			s.LayerID = e.store.ActiveLayer()
		}
		e.store.Add(s)
		e.cache.Invalidate(s.ID)
		ids = append(ids, s.ID)
	}
	e.store.SetSelection(ids)
	e.events.Publish(event.TopicSelectionChanged, ids)
	e.record()
}

// FlushFrame runs the deferred per-frame snap pass. Called on the
// frontend's frame tick.
func (e *Editor) FlushFrame() {
	e.engine.FlushFrame()
}

// Guides returns the live alignment guides for rendering.
func (e *Editor) Guides() []snap.Guide { return e.engine.Guides() }

// Spacing returns the live even-spacing measurements.
func (e *Editor) Spacing() []snap.Spacing { return e.engine.Spacing() }

// SnapMatch returns the active magnetic snap match so the frontend can
// render the snapped indicator.
func (e *Editor) SnapMatch() (snap.Match, bool) { return e.engine.SnapMatch() }

// ResizeSelection scales every unlocked selected shape from the
// selection's union bounds into target, preserving relative layout.
func (e *Editor) ResizeSelection(target geom.Rect) error {
	return e.engine.ResizeSelection(target)
}

// FlipSelection mirrors the selection about its bounding-box center.
func (e *Editor) FlipSelection(horizontal bool) error {
	if err := e.engine.FlipSelection(horizontal); err != nil {
		return err
	}
	e.events.Publish(event.TopicShapeModified, e.store.Selection())
	return nil
}

// Reset clears all shapes, selection and sessions, returns to the
// select tool, and re-seeds history with the fresh initial state.
func (e *Editor) Reset() error {
	e.engine.Teardown()
	e.store.Clear()
	e.cache.InvalidateAll()
	if err := e.SwitchTool(mode.ModeSelect, ""); err != nil {
		return err
	}
	e.mu.Lock()
	err := e.history.Reset(e.snapshotLocked())
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.events.Publish(event.TopicDocumentReset, nil)
	return nil
}

// SelectionBounds returns the union bounds of the current selection.
func (e *Editor) SelectionBounds() (geom.Rect, bool) {
	ids := e.store.Selection()
	if len(ids) == 0 {
		return geom.Rect{}, false
	}
	var out geom.Rect
	first := true
	for _, id := range ids {
		s := e.store.Get(id)
		if s == nil {
			continue
		}
		b := s.Bounds()
		if first {
			out = b
			first = false
		} else {
			out = out.Union(b)
		}
	}
	return out, !first
}
