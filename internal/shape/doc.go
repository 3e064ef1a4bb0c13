// Package shape defines the editor's data model: shapes with their point
// encodings and rotation metadata, the store that owns the shape
// collection, selection, grouping and layers, snap feature extraction,
// and the structural repair pass run after history restores.
package shape
