// Package mode implements the tool-mode state machine: the six editor
// tool modes (select, edit, resize, rotate, measure, line-draw), guarded
// transitions between them, and change notification so the engines can
// tear down live-preview state when a mode exits.
package mode
