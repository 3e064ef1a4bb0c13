// Package backend abstracts the cell-grid output device so the canvas
// renderer can be tested against an in-memory grid and run against a
// real terminal.
package backend

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Cell is one grid cell: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

// EventType tags input events.
type EventType uint8

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// MouseButton identifies which button an event carries.
type MouseButton uint8

// Mouse buttons.
const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event is a normalized input event.
type Event struct {
	Type EventType

	// Key events.
	Rune rune
	Esc  bool

	// Mouse events.
	MouseX, MouseY int
	Button         MouseButton
	Shift          bool

	// Resize events.
	Width, Height int
}

// Backend is the output device for the canvas renderer.
type Backend interface {
	Init() error
	Fini()
	Size() (int, int)
	SetCell(x, y int, c Cell)
	Clear()
	Show()
	PollEvent() Event
}
