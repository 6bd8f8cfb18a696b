// Package engine runs a game: it opens the terminal window and the mixer,
// then loops over input, update, draw and present until the game quits.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ge211/audio"
	"github.com/lixenwraith/ge211/clock"
	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/config"
	"github.com/lixenwraith/ge211/event"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/random"
	"github.com/lixenwraith/ge211/render"
	"github.com/lixenwraith/ge211/resource"
	"github.com/lixenwraith/ge211/session"
	"github.com/lixenwraith/ge211/sprites"
	"github.com/lixenwraith/ge211/status"
	"github.com/lixenwraith/ge211/window"
)

// Engine is the state of one Run; games reach it through Base
type Engine struct {
	cfg     config.Config
	log     *slog.Logger
	src     clock.Source
	sleep   func(time.Duration)
	loc     *resource.Locator
	metrics *status.Registry
	screen  tcell.Screen
	output  audio.Output

	quit    atomic.Bool
	focused bool

	queue     *event.Queue
	win       *window.Window
	mixer     *audio.Mixer
	frames    *clock.FrameClock
	canvas    *render.Canvas
	presenter *render.Presenter
}

// Option configures Run
type Option func(*Engine)

// WithScreen runs on screen instead of the process terminal
func WithScreen(screen tcell.Screen) Option {
	return func(e *Engine) { e.screen = screen }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock measures frames against src
func WithClock(src clock.Source) Option {
	return func(e *Engine) { e.src = src }
}

// WithSleep replaces the software vsync sleep
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Engine) { e.sleep = sleep }
}

// WithLocator resolves game resources with loc
func WithLocator(loc *resource.Locator) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithMetrics publishes frame statistics to reg
func WithMetrics(reg *status.Registry) Option {
	return func(e *Engine) { e.metrics = reg }
}

// WithAudioOutput plays through out instead of the configured backend
func WithAudioOutput(out audio.Output) Option {
	return func(e *Engine) { e.output = out }
}

// Run drives game until it quits or ctx is cancelled
// A cancelled context returns ctx.Err(); a game that quits returns nil
func Run(ctx context.Context, game Game, cfg config.Config, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		log:     slog.New(slog.DiscardHandler),
		sleep:   time.Sleep,
		metrics: status.NewRegistry(),
		focused: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = clock.NewSystem()
	}
	e.queue = event.NewQueue(event.QueueSize, e.metrics.Ints.Get(status.EventsDropped))
	if e.loc == nil {
		e.loc = resource.NewLocator(cfg.Resources.Paths, resource.WithLogger(e.log))
	}

	return e.run(ctx, game)
}

func (e *Engine) run(ctx context.Context, game Game) error {
	end := session.Begin()
	defer end()

	random.Seed(e.cfg.Random.Seed)

	screens := newScreenService(e.screen)
	mixerOpts := []audio.Option{audio.WithLogger(e.log), audio.WithMetrics(e.metrics)}
	if e.output != nil {
		mixerOpts = append(mixerOpts, audio.WithOutput(e.output))
	}

	hub := session.NewHub(e.log)
	for _, svc := range []session.Service{
		screens,
		newInputService(screens, e.queue),
		audio.NewService(e.cfg.Audio, e.loc, mixerOpts...),
	} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(!e.cfg.Audio.Enabled); err != nil {
		return err
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			e.log.Warn("service shutdown", "error", err)
		}
	}()

	e.screen = session.MustGet[*screenService](hub, screenServiceName).screen
	setCrashScreen(e.screen)
	defer setCrashScreen(nil)
	defer func() {
		if r := recover(); r != nil {
			HandleCrash(r)
		}
	}()

	if err := hub.StartAll(); err != nil {
		return err
	}
	e.mixer = session.MustGet[*audio.Service](hub, audio.ServiceName).Mixer()
	e.log.Debug("services started", "services", hub.Names())

	e.openWindow(game)

	if a, ok := game.(attachable); ok {
		a.attach(e)
		defer a.detach()
	}

	if h, ok := game.(StartHandler); ok {
		if err := h.OnStart(); err != nil {
			return fmt.Errorf("game start: %w", err)
		}
	}

	err := e.loop(ctx, game)

	if h, ok := game.(QuitHandler); ok {
		h.OnQuit()
	}
	e.log.Info("engine stopped", "metrics", e.metrics)
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (e *Engine) openWindow(game Game) {
	title := e.cfg.Window.Title
	if t, ok := game.(WindowTitler); ok {
		title = t.InitialWindowTitle()
	}
	e.win = window.New(e.screen, title, e.log)

	want := geometry.Dimensions{Width: e.cfg.Window.Width, Height: e.cfg.Window.Height}
	if d, ok := game.(WindowDimensioner); ok {
		want = d.InitialWindowDimensions()
	}
	if want.Width > 0 && want.Height > 0 {
		if err := e.win.SetDimensions(want); err != nil {
			e.log.Info("using terminal size", "requested", want.String(),
				"actual", e.win.Dimensions().String())
		}
	}

	e.canvas = render.NewCanvas(e.win.Dimensions())
	e.presenter = render.NewPresenter(e.screen)
}

// loop runs frames until quit
// Each frame: mark, events, update, poll audio, draw, present, vsync
func (e *Engine) loop(ctx context.Context, game Game) error {
	frameLength := time.Duration(float64(time.Second) / e.cfg.Frame.SoftwareFPS)
	e.frames = clock.NewFrameClock(e.src, frameLength)
	set := sprites.NewSet()

	for {
		e.frames.MarkFrame()
		dt := e.frames.PrevFrameLength()

		e.dispatch(game, e.queue.Consume())
		if ctx.Err() != nil {
			e.Quit()
		}
		if h, ok := game.(FrameHandler); ok {
			h.OnFrame(dt.Seconds())
		}
		if e.quit.Load() {
			return nil
		}

		e.mixer.PollChannels()

		set.Reset()
		game.Draw(set)
		e.canvas.Clear(e.background(game))
		if err := set.Render(e.canvas); err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		e.frames.MarkPresent()
		e.presenter.Present(e.canvas)
		e.publish()

		// sleep out the rest of this frame, measured from its start
		if elapsed := e.src.Now().Sub(e.frames.FrameStartTime()); elapsed < frameLength {
			e.sleep(frameLength - elapsed)
		}
	}
}

func (e *Engine) dispatch(game Game, events []event.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case event.KindKeyDown:
			if h, ok := game.(KeyDownHandler); ok {
				h.OnKeyDown(ev.Key)
			}
			if h, ok := game.(KeyHandler); ok {
				h.OnKey(ev.Key)
			}
		case event.KindKeyUp:
			if h, ok := game.(KeyUpHandler); ok {
				h.OnKeyUp(ev.Key)
			}
		case event.KindMouseDown:
			if h, ok := game.(MouseDownHandler); ok {
				h.OnMouseDown(ev.Button, ev.Position)
			}
		case event.KindMouseUp:
			if h, ok := game.(MouseUpHandler); ok {
				h.OnMouseUp(ev.Button, ev.Position)
			}
		case event.KindMouseMove:
			if h, ok := game.(MouseMoveHandler); ok {
				h.OnMouseMove(ev.Position)
			}
		case event.KindFocus:
			e.focused = ev.Focused
		case event.KindResize:
			e.presenter.Invalidate()
			if !e.win.Resizable() {
				e.log.Debug("resize ignored", "dimensions", ev.Size.String())
				continue
			}
			e.canvas.Resize(ev.Size)
			e.log.Debug("window resized", "dimensions", ev.Size.String())
		case event.KindQuit:
			e.Quit()
		}
	}
}

func (e *Engine) background(game Game) color.Color {
	if b, ok := game.(Backgrounder); ok {
		return b.BackgroundColor()
	}
	return e.cfg.Window.Background
}

func (e *Engine) publish() {
	e.metrics.Ints.Get(status.FrameCount).Add(1)
	e.metrics.Gauges.Get(status.FrameRate).Store(e.frames.FrameRate())
	e.metrics.Gauges.Get(status.LoadPercent).Store(e.frames.LoadPercent())
}

// Quit ends the loop before the next draw; safe from any goroutine
func (e *Engine) Quit() {
	e.quit.Store(true)
}

func (e *Engine) Window() *window.Window {
	return e.win
}

func (e *Engine) Mixer() *audio.Mixer {
	return e.mixer
}

// Focused reports whether the terminal has input focus
func (e *Engine) Focused() bool {
	return e.focused
}

// FrameRate is the measured frames per second
func (e *Engine) FrameRate() float64 {
	if e.frames == nil {
		return 0
	}
	return e.frames.FrameRate()
}

// LoadPercent is the busy share of recent frames
func (e *Engine) LoadPercent() float64 {
	if e.frames == nil {
		return 0
	}
	return e.frames.LoadPercent()
}

// Metrics returns the registry the engine and mixer publish to
func (e *Engine) Metrics() *status.Registry {
	return e.metrics
}
