package engine

import (
	"github.com/lixenwraith/ge211/audio"
	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/event"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/random"
	"github.com/lixenwraith/ge211/sprites"
	"github.com/lixenwraith/ge211/window"
)

// Game is what Run drives: Draw is called once per frame with an empty set
//
// A game reacts to input and time by also implementing any of the handler
// interfaces below. Embedding Base supplies the engine accessors and makes
// Escape quit.
type Game interface {
	Draw(set *sprites.Set)
}

// StartHandler is called once before the first frame; an error aborts Run
type StartHandler interface {
	OnStart() error
}

// QuitHandler is called once after the last frame
type QuitHandler interface {
	OnQuit()
}

// FrameHandler is called every frame with the previous frame's length in seconds
type FrameHandler interface {
	OnFrame(dt float64)
}

// KeyHandler receives every key press, textual or not
type KeyHandler interface {
	OnKey(key event.Key)
}

type KeyDownHandler interface {
	OnKeyDown(key event.Key)
}

type KeyUpHandler interface {
	OnKeyUp(key event.Key)
}

type MouseDownHandler interface {
	OnMouseDown(button event.MouseButton, at geometry.Position)
}

type MouseUpHandler interface {
	OnMouseUp(button event.MouseButton, at geometry.Position)
}

type MouseMoveHandler interface {
	OnMouseMove(at geometry.Position)
}

// WindowDimensioner requests a window size; terminals only honour their own
type WindowDimensioner interface {
	InitialWindowDimensions() geometry.Dimensions
}

type WindowTitler interface {
	InitialWindowTitle() string
}

// Backgrounder supplies the color each frame is cleared to
type Backgrounder interface {
	BackgroundColor() color.Color
}

// attachable is implemented by Base, and so by every game that embeds it
type attachable interface {
	attach(e *Engine)
	detach()
}

// Base is embedded in a game to reach the engine
type Base struct {
	eng  *Engine
	quit bool
	rng  *random.Random
}

func (b *Base) attach(e *Engine) {
	b.eng = e
	if b.quit {
		e.Quit()
	}
}

func (b *Base) detach() {
	b.eng = nil
}

// OnKeyDown quits on Escape
func (b *Base) OnKeyDown(key event.Key) {
	if key == event.KeyEscape {
		b.Quit()
	}
}

// Quit ends the game after the current frame's OnFrame
func (b *Base) Quit() {
	b.quit = true
	if b.eng != nil {
		b.eng.Quit()
	}
}

// Window returns the game window; it exists only while the engine runs
func (b *Base) Window() (*window.Window, error) {
	if b.eng == nil {
		return nil, errs.ClientLogic("Base.Window: Window does not exist until engine is initialized")
	}
	return b.eng.Window(), nil
}

// Mixer returns the audio mixer, or nil while the engine is not running
func (b *Base) Mixer() *audio.Mixer {
	if b.eng == nil {
		return nil
	}
	return b.eng.Mixer()
}

// Random returns the game's shared random generator
func (b *Base) Random() *random.Random {
	if b.rng == nil {
		b.rng = random.New()
	}
	return b.rng
}

// FrameRate is the measured frames per second
func (b *Base) FrameRate() float64 {
	if b.eng == nil {
		return 0
	}
	return b.eng.FrameRate()
}

// LoadPercent is the share of each frame spent working rather than sleeping
func (b *Base) LoadPercent() float64 {
	if b.eng == nil {
		return 0
	}
	return b.eng.LoadPercent()
}

// BackgroundColor is the configured window background
func (b *Base) BackgroundColor() color.Color {
	if b.eng == nil {
		return color.Black
	}
	return b.eng.cfg.Window.Background
}

// Prepare freezes a paintable sprite ahead of its first render
func (b *Base) Prepare(s sprites.Sprite) {
	sprites.Prepare(s)
}
