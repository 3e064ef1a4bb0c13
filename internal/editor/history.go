package editor

import (
	"errors"

	"github.com/vexcanvas/vexcanvas/internal/engine/history"
	"github.com/vexcanvas/vexcanvas/internal/event"
)

// snapshotLocked captures the current document state. Caller holds
// e.mu; the store carries its own lock.
func (e *Editor) snapshotLocked() history.Snapshot {
	return history.Snapshot{
		Shapes:      e.store.All(),
		Selection:   e.store.Selection(),
		Layers:      e.store.Layers(),
		ActiveLayer: e.store.ActiveLayer(),
		ToolConfig: history.ToolConfig{
			ActiveTool:      e.modes.CurrentName(),
			SnapEnabled:     e.snapCfg.Enabled,
			SnapRadius:      e.snapCfg.Radius,
			SnapMode:        e.snapCfg.Mode,
			GridSpacing:     e.snapCfg.GridSpacing,
			ActiveSnapTypes: e.snapCfg.ActiveTypes.Sorted(),
			ShowDimensions:  e.showDimensions,
		},
	}
}

// record saves the current state as a history entry. Wired as the
// transform engine's Recorder; every committed mutation lands here.
func (e *Editor) record() {
	e.mu.Lock()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	saved, err := e.history.Save(snap)
	if err != nil {
		e.log.Error("history save failed: %v", err)
		return
	}
	if saved {
		e.log.Debug("history entry recorded, depth=%d", e.history.Depth())
		e.events.Publish(event.TopicHistoryRecorded, e.history.Depth())
	}
}

// Save records the current state explicitly. Returns false when the
// state is unchanged since the last entry.
func (e *Editor) Save() (bool, error) {
	e.mu.Lock()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	return e.history.Save(snap)
}

// Undo restores the previous snapshot. Any in-flight gesture is torn
// down first. A corrupt snapshot aborts the restore and leaves both
// the stack and the document unchanged.
func (e *Editor) Undo() error {
	e.engine.Teardown()
	res, err := e.history.Undo()
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return err
		}
		e.log.Error("undo aborted: %v", err)
		return err
	}
	e.applyRestore(res)
	return nil
}

// Redo restores the next snapshot.
func (e *Editor) Redo() error {
	e.engine.Teardown()
	res, err := e.history.Redo()
	if err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			return err
		}
		e.log.Error("redo aborted: %v", err)
		return err
	}
	e.applyRestore(res)
	return nil
}

// CanUndo reports whether an undo entry exists.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo entry exists.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// applyRestore pushes a restored snapshot into the live document.
// Document-level tool settings (radius, mode, grid, active types) come
// from the snapshot; UI preferences (active tool, snap toggle,
// dimension labels) keep their live values, which may be newer than
// anything the stack has seen.
func (e *Editor) applyRestore(res history.RestoreResult) {
	snap := res.Snapshot
	e.store.Replace(snap.Shapes, snap.Selection, snap.Layers, snap.ActiveLayer)
	e.cache.InvalidateAll()

	e.mu.Lock()
	e.snapCfg.Radius = snap.ToolConfig.SnapRadius
	e.snapCfg.Mode = snap.ToolConfig.SnapMode
	e.snapCfg.GridSpacing = snap.ToolConfig.GridSpacing
	e.snapCfg.ActiveTypes = snap.ToolConfig.SnapTypeSet()
	e.mu.Unlock()

	if len(res.Repair.Dropped) > 0 || len(res.Repair.Repaired) > 0 {
		e.log.Warn("restore repaired snapshot: dropped=%d repaired=%d",
			len(res.Repair.Dropped), len(res.Repair.Repaired))
	}
	e.events.Publish(event.TopicHistoryRestored, res.Repair)
}
