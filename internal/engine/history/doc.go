// Package history implements the snapshot-based undo/redo manager:
// idempotent saves, pointer-moving undo and redo over serialized
// structural snapshots, corruption detection before any restore, and
// the post-restore integrity repair that keeps rectangle encodings and
// UI preferences stable across undo.
package history
