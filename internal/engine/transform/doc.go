// Package transform implements the drag, resize and rotate engines for
// single shapes and multi-selections, the one-active-session rule, and
// the once-per-frame deferred scheduler that coalesces snap and
// alignment recomputation.
//
// Live previews are held in session state, never in the authoritative
// shapes; only an explicit commit merges the overlay, invalidates the
// geometry cache and records a history snapshot.
package transform
