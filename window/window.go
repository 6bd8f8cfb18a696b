// Package window presents the terminal as a pixel window.
//
// Each terminal cell holds two vertically stacked pixels, so a screen of
// cols × rows cells is a window of cols × rows·2 pixels. The terminal is
// always full-screen and sits at the origin.
package window

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/render"
)

// titleSetter is implemented by screens that can set the terminal title
type titleSetter interface {
	SetTitle(string)
}

// Window wraps a tcell screen
type Window struct {
	screen    tcell.Screen
	title     string
	resizable bool
	log       *slog.Logger
}

// New wraps screen and sets its title
func New(screen tcell.Screen, title string, log *slog.Logger) *Window {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	w := &Window{screen: screen, resizable: true, log: log}
	w.SetTitle(title)
	return w
}

// Screen returns the underlying tcell screen
func (w *Window) Screen() tcell.Screen {
	return w.screen
}

// Dimensions returns the drawable size in pixels
func (w *Window) Dimensions() geometry.Dimensions {
	cols, rows := w.screen.Size()
	return geometry.Dimensions{Width: cols, Height: rows * render.CellHeight}
}

// SetDimensions succeeds only when dims already matches the terminal
// The terminal size belongs to the user
func (w *Window) SetDimensions(dims geometry.Dimensions) error {
	if dims != w.Dimensions() {
		w.log.Debug("window resize refused", "requested", dims.String(), "actual", w.Dimensions().String())
		return errs.Environment("Window.SetDimensions: out of range")
	}
	return nil
}

// MaxWindowDimensions is the whole terminal
func (w *Window) MaxWindowDimensions() geometry.Dimensions {
	return w.Dimensions()
}

func (w *Window) Title() string {
	return w.title
}

// SetTitle records title and forwards it to the terminal when supported
func (w *Window) SetTitle(title string) {
	w.title = title
	if ts, ok := w.screen.(titleSetter); ok {
		ts.SetTitle(title)
	}
}

// Resizable reports whether resize events are honoured
func (w *Window) Resizable() bool {
	return w.resizable
}

func (w *Window) SetResizable(resizable bool) {
	w.resizable = resizable
}

// Position is always the origin
func (w *Window) Position() geometry.Position {
	return geometry.Position{}
}

// SetPosition accepts only the origin
func (w *Window) SetPosition(p geometry.Position) error {
	if p != (geometry.Position{}) {
		return errs.Environment("Window.SetPosition: terminal cannot move")
	}
	return nil
}

// Fullscreen is always true
func (w *Window) Fullscreen() bool {
	return true
}

// SetFullscreen(false) fails since the terminal cannot leave full-screen
func (w *Window) SetFullscreen(fullscreen bool) error {
	if !fullscreen {
		return errs.Environment("Window.SetFullscreen: terminal is always full-screen")
	}
	return nil
}
