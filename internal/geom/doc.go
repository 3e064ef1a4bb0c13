// Package geom provides the pure 2D geometry used by the editor core:
// points, axis-aligned boxes, rotation about arbitrary centers, box-to-box
// scaling for multi-selection transforms, and the axis-lock projection.
//
// All functions are pure and operate on float64 world coordinates. Nothing
// in this package knows about shapes, sessions, or rendering.
package geom
