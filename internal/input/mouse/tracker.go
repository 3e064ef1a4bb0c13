// Package mouse turns raw pointer events into canvas gestures: clicks,
// double clicks, and drags with a movement threshold separating the
// two.
package mouse

import (
	"time"

	"github.com/vexcanvas/vexcanvas/internal/geom"
)

// Gesture classifies a processed pointer event.
type Gesture uint8

// Gestures emitted by the tracker.
const (
	GestureNone Gesture = iota
	GestureClick
	GestureDoubleClick
	GestureDragStart
	GestureDragMove
	GestureDragEnd
)

// DefaultDragThreshold is the world-space movement below which a press
// and release still counts as a click.
const DefaultDragThreshold = 2.0

// DefaultDoubleClickTime is the maximum gap between clicks of a
// double click.
const DefaultDoubleClickTime = 400 * time.Millisecond

// Tracker accumulates press/move/release events and reports gestures.
// It is not safe for concurrent use; the event loop owns it.
type Tracker struct {
	dragThreshold float64

	// drag state
	pressed  bool
	dragging bool
	start    geom.Point
	current  geom.Point

	// click sequence state
	clickMaxTime time.Duration
	lastClickPos geom.Point
	lastClick    time.Time
	clickCount   int
}

// NewTracker creates a tracker with the default thresholds.
func NewTracker() *Tracker {
	return &Tracker{
		dragThreshold: DefaultDragThreshold,
		clickMaxTime:  DefaultDoubleClickTime,
	}
}

// Press records a button press at pos.
func (t *Tracker) Press(pos geom.Point) {
	t.pressed = true
	t.dragging = false
	t.start = pos
	t.current = pos
}

// Move records pointer movement. It reports GestureDragStart exactly
// once, when the movement first exceeds the threshold, then
// GestureDragMove for every further move.
func (t *Tracker) Move(pos geom.Point) Gesture {
	if !t.pressed {
		return GestureNone
	}
	t.current = pos
	if !t.dragging {
		if pos.Distance(t.start) < t.dragThreshold {
			return GestureNone
		}
		t.dragging = true
		return GestureDragStart
	}
	return GestureDragMove
}

// Release records the button release. A release without a preceding
// drag is a click; clicks close together in time and space escalate to
// a double click.
func (t *Tracker) Release(pos geom.Point, now time.Time) Gesture {
	if !t.pressed {
		return GestureNone
	}
	t.pressed = false

	if t.dragging {
		t.dragging = false
		t.clickCount = 0
		return GestureDragEnd
	}

	if t.inClickSequence(pos, now) {
		t.clickCount++
	} else {
		t.clickCount = 1
	}
	t.lastClickPos = pos
	t.lastClick = now

	if t.clickCount >= 2 {
		t.clickCount = 0
		return GestureDoubleClick
	}
	return GestureClick
}

func (t *Tracker) inClickSequence(pos geom.Point, now time.Time) bool {
	if t.clickCount == 0 || t.lastClick.IsZero() {
		return false
	}
	elapsed := now.Sub(t.lastClick)
	if elapsed < 0 || elapsed > t.clickMaxTime {
		return false
	}
	return pos.Distance(t.lastClickPos) <= t.dragThreshold
}

// Start returns the position where the press happened.
func (t *Tracker) Start() geom.Point { return t.start }

// Current returns the latest pointer position.
func (t *Tracker) Current() geom.Point { return t.current }

// Delta returns the offset dragged from start.
func (t *Tracker) Delta() geom.Point { return t.current.Sub(t.start) }

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool { return t.dragging }

// Reset clears all state, used when the editor cancels a gesture.
func (t *Tracker) Reset() {
	t.pressed = false
	t.dragging = false
	t.clickCount = 0
	t.lastClick = time.Time{}
}
