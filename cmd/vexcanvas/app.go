package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vexcanvas/vexcanvas/internal/app"
	"github.com/vexcanvas/vexcanvas/internal/config"
	"github.com/vexcanvas/vexcanvas/internal/editor"
	"github.com/vexcanvas/vexcanvas/internal/geom"
	"github.com/vexcanvas/vexcanvas/internal/input/mode"
	"github.com/vexcanvas/vexcanvas/internal/input/mouse"
	luaplugin "github.com/vexcanvas/vexcanvas/internal/plugin/lua"
	"github.com/vexcanvas/vexcanvas/internal/renderer"
	"github.com/vexcanvas/vexcanvas/internal/renderer/backend"
)

// application ties the editing core, the canvas renderer and a backend
// into the terminal preview.
type application struct {
	opts   options
	cfg    *config.Config
	editor *editor.Editor
	log    *app.Logger

	backend backend.Backend
	canvas  *renderer.Canvas
	tracker *mouse.Tracker

	mouseDown bool
	shutdown  bool
}

func newApplication(opts options) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, app.NewOperationError("app.new", "config", err)
	}
	if opts.LogLevel == "" {
		opts.LogLevel = cfg.LogLevel
	}

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(opts.LogLevel)
	if opts.Debug {
		logCfg.Level = app.LogLevelDebug
	}
	log := app.NewLogger(logCfg)

	ed, err := editor.New(
		editor.WithSnapConfig(cfg.SnapConfig()),
		editor.WithHistoryDepth(cfg.HistoryDepth),
		editor.WithShowDimensions(cfg.ShowDimensions),
		editor.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &application{
		opts:    opts,
		cfg:     cfg,
		editor:  ed,
		log:     log,
		tracker: mouse.NewTracker(),
	}, nil
}

// setBackend attaches the output device. Must be called before run.
func (a *application) setBackend(b backend.Backend) error {
	if err := b.Init(); err != nil {
		return app.NewOperationError("app.backend", "", err)
	}
	a.backend = b
	a.canvas = renderer.NewCanvas(b)
	return nil
}

// stop restores the terminal. Safe to call more than once.
func (a *application) stop() {
	if a.shutdown {
		return
	}
	a.shutdown = true
	if a.backend != nil {
		a.backend.Fini()
	}
}

// runMacro executes the configured Lua macro file, used to seed a
// document from a script before the interactive loop starts.
func (a *application) runMacro() error {
	path := a.opts.MacroPath
	if path == "" {
		path = a.cfg.MacroPath
	}
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return app.NewOperationError("app.macro", path, err)
	}
	runner := luaplugin.NewRunner(a.editor)
	defer runner.Close()
	return runner.Run(string(data))
}

// run drives the event loop until quit.
func (a *application) run() error {
	if a.backend == nil {
		return fmt.Errorf("%w: no backend attached", app.ErrInitialization)
	}

	a.render()
	for {
		ev := a.backend.PollEvent()
		switch ev.Type {
		case backend.EventKey:
			if ev.Esc || ev.Rune == 'q' {
				return app.ErrQuit
			}
			a.handleKey(ev)
		case backend.EventMouse:
			a.handleMouse(ev)
		case backend.EventResize:
			// The canvas reads the size on every frame.
		case backend.EventNone:
			return app.ErrQuit
		}

		a.editor.FlushFrame()
		a.render()
	}
}

func (a *application) handleKey(ev backend.Event) {
	switch ev.Rune {
	case 'u':
		if err := a.editor.Undo(); err != nil {
			a.log.Debug("undo: %v", err)
		}
	case 'y':
		if err := a.editor.Redo(); err != nil {
			a.log.Debug("redo: %v", err)
		}
	case 'd':
		a.editor.DeleteSelection()
	case 'h':
		_ = a.editor.FlipSelection(true)
	case 'v':
		_ = a.editor.FlipSelection(false)
	case 's':
		a.editor.SetSnapEnabled(!a.editor.SnapConfig().Enabled)
	}
}

func (a *application) handleMouse(ev backend.Event) {
	pos := a.canvas.WorldAt(ev.MouseX, ev.MouseY)

	switch ev.Button {
	case backend.MouseLeft:
		if !a.mouseDown {
			a.mouseDown = true
			a.tracker.Press(pos)
			return
		}
		switch a.tracker.Move(pos) {
		case mouse.GestureDragStart:
			a.startDrag(pos)
		case mouse.GestureDragMove:
			if err := a.editor.DragTo(pos, ev.Shift); err != nil {
				a.log.Debug("drag: %v", err)
			}
		}
	case backend.MouseNone:
		if !a.mouseDown {
			return
		}
		a.mouseDown = false
		switch a.tracker.Release(pos, time.Now()) {
		case mouse.GestureClick:
			a.handleClick(pos)
		case mouse.GestureDoubleClick:
			if hit := a.hitTest(pos); hit != "" {
				_ = a.editor.SwitchTool(mode.ModeEdit, hit)
			}
		case mouse.GestureDragEnd:
			if err := a.editor.CommitGesture(); err != nil {
				a.log.Debug("drag commit: %v", err)
			}
		}
	}
}

// startDrag opens an editor drag for the shape under the press point.
func (a *application) startDrag(pos geom.Point) {
	start := a.tracker.Start()
	hit := a.hitTest(start)
	if hit == "" {
		return
	}
	if !a.editor.Store().IsSelected(hit) {
		_ = a.editor.Store().SelectOnly(hit)
	}
	if err := a.editor.BeginDrag(hit, start); err != nil {
		a.log.Debug("drag start: %v", err)
		return
	}
	if err := a.editor.DragTo(pos, false); err != nil {
		a.log.Debug("drag: %v", err)
	}
}

func (a *application) handleClick(pos geom.Point) {
	hit := a.hitTest(pos)
	if hit == "" {
		a.editor.Store().ClearSelection()
		return
	}
	_ = a.editor.Store().SelectOnly(hit)
}

// hitTest returns the topmost visible shape whose bounds contain pos.
func (a *application) hitTest(pos geom.Point) string {
	shapes := a.editor.Store().Visible()
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Bounds().Contains(pos) {
			return shapes[i].ID
		}
	}
	return ""
}

// render assembles a frame from current editor state and draws it.
func (a *application) render() {
	st := a.editor.Store()

	selection := make(map[string]bool)
	for _, id := range st.Selection() {
		selection[id] = true
	}
	layerIndex := make(map[string]int)
	for i, l := range st.Layers() {
		layerIndex[l.ID] = i
	}

	frame := renderer.Frame{
		Shapes:         st.Visible(),
		Selection:      selection,
		LayerIndex:     layerIndex,
		Guides:         a.editor.Guides(),
		ShowDimensions: a.editor.ShowDimensions(),
	}
	if m, ok := a.editor.SnapMatch(); ok {
		target := m.Target.Position
		frame.SnapTarget = &target
	}
	a.canvas.Render(frame)
}
