package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Fini restores the terminal.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the grid dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// SetCell writes one cell.
func (t *Terminal) SetCell(x, y int, c Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	style := tcell.StyleDefault.Foreground(
		tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B)))
	t.screen.SetContent(x, y, c.Rune, nil, style)
}

// Clear blanks the grid.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// Show flushes pending writes to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// PollEvent blocks for the next input event.
func (t *Terminal) PollEvent() Event {
	for {
		switch e := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return Event{
				Type:  EventKey,
				Rune:  e.Rune(),
				Esc:   e.Key() == tcell.KeyEscape,
				Shift: e.Modifiers()&tcell.ModShift != 0,
			}
		case *tcell.EventMouse:
			x, y := e.Position()
			return Event{
				Type:   EventMouse,
				MouseX: x,
				MouseY: y,
				Button: convertButton(e.Buttons()),
				Shift:  e.Modifiers()&tcell.ModShift != 0,
			}
		case *tcell.EventResize:
			w, h := e.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case nil:
			return Event{Type: EventNone}
		}
	}
}

func convertButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
