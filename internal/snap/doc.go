// Package snap implements magnetic snapping and alignment feedback: a
// grid-bucket spatial index over candidate snap points, a detector that
// selects the minimum-distance feature/target pair within the configured
// radius, visual-only alignment guides and spacing measurements, and the
// snap configuration surface shared with the tool modes.
package snap
