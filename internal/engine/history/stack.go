package history

import (
	"bytes"
	"errors"
	"sync"

	"github.com/vexcanvas/vexcanvas/internal/shape"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// RestoreResult carries a decoded, repaired snapshot back to the caller
// along with what the integrity pass changed.
type RestoreResult struct {
	Snapshot Snapshot
	Repair   shape.RepairResult
}

// Stack is the snapshot-based undo/redo manager. It holds serialized
// snapshots: an ordered past, the present, and an ordered future.
// Undo and redo only move the pointer; they never mutate shape objects
// beyond what the snapshot encodes plus the structural repair pass.
type Stack struct {
	mu sync.Mutex

	past    [][]byte
	present []byte
	future  [][]byte

	maxEntries int
}

// NewStack creates a history stack seeded with the initial snapshot.
// Created once at application start.
func NewStack(initial Snapshot, maxEntries int) (*Stack, error) {
	data, err := Encode(initial)
	if err != nil {
		return nil, err
	}
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Stack{
		present:    data,
		maxEntries: maxEntries,
	}, nil
}

// Save captures the given state as the new present. It is idempotent:
// if the serialized form equals the current present nothing is pushed,
// preventing no-op history entries. Every real push clears the future.
// Returns true when a new entry was recorded.
func (st *Stack) Save(s Snapshot) (bool, error) {
	data, err := Encode(s)
	if err != nil {
		return false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if bytes.Equal(data, st.present) {
		return false, nil
	}

	st.past = append(st.past, st.present)
	st.present = data
	st.future = nil

	if len(st.past) > st.maxEntries {
		excess := len(st.past) - st.maxEntries
		st.past = st.past[excess:]
	}
	return true, nil
}

// Undo moves the pointer one step back and returns the restored,
// repaired snapshot. UI-preference tool-config fields keep their
// pre-undo values. A snapshot that fails to parse aborts the call and
// leaves the stack unchanged.
func (st *Stack) Undo() (RestoreResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.past) == 0 {
		return RestoreResult{}, ErrNothingToUndo
	}

	target := st.past[len(st.past)-1]
	return st.restoreLocked(target, func(patched []byte) {
		st.past = st.past[:len(st.past)-1]
		st.future = append(st.future, st.present)
		st.present = patched
	})
}

// Redo moves the pointer one step forward, with the same restore
// semantics as Undo.
func (st *Stack) Redo() (RestoreResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.future) == 0 {
		return RestoreResult{}, ErrNothingToRedo
	}

	target := st.future[len(st.future)-1]
	return st.restoreLocked(target, func(patched []byte) {
		st.future = st.future[:len(st.future)-1]
		st.past = append(st.past, st.present)
		st.present = patched
	})
}

// restoreLocked validates and decodes target, preserves UI prefs from
// the current present, runs the structural repair pass, and only then
// commits the pointer move. Any failure leaves the stack untouched.
func (st *Stack) restoreLocked(target []byte, commit func(patched []byte)) (RestoreResult, error) {
	patched, err := preserveUIPrefs(target, st.present)
	if err != nil {
		return RestoreResult{}, err
	}

	snap, err := Decode(patched)
	if err != nil {
		return RestoreResult{}, err
	}

	repaired, repair := shape.Repair(snap.Shapes)
	snap.Shapes = repaired

	commit(patched)
	return RestoreResult{Snapshot: snap, Repair: repair}, nil
}

// CanUndo reports whether an undo step is available.
func (st *Stack) CanUndo() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.past) > 0
}

// CanRedo reports whether a redo step is available.
func (st *Stack) CanRedo() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.future) > 0
}

// Depth returns the number of past entries.
func (st *Stack) Depth() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.past)
}

// Present returns the serialized present snapshot. The persistence
// layer writes this form verbatim.
func (st *Stack) Present() []byte {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]byte, len(st.present))
	copy(out, st.present)
	return out
}

// Reset reseeds the stack with a fresh initial snapshot, discarding all
// history.
func (st *Stack) Reset(initial Snapshot) error {
	data, err := Encode(initial)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.past = nil
	st.future = nil
	st.present = data
	return nil
}
