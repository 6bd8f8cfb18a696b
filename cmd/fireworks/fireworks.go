package main

import (
	"log/slog"
	"math"

	"github.com/lixenwraith/ge211/audio"
	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/engine"
	"github.com/lixenwraith/ge211/event"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/random"
	"github.com/lixenwraith/ge211/sprites"
)

// Scene constants are for a 1024×768 scene and scale with window height
var sceneDimensions = geometry.Dimensions{Width: 1024, Height: 768}

const (
	gravity        = 120.0 // px/s²
	minLaunchSpeed = 350   // px/s
	maxLaunchSpeed = 500
	maxLaunchAngle = 30 // degrees from vertical
	fuseSeconds    = 2.0
	minStars       = 40
	maxStars       = 400
	minStarSpeed   = 10 // px/s
	maxStarSpeed   = 100
	burnSeconds    = 2.0
	numberOfColors = 12
	mortarRadius   = 5
	starRadius     = 2
)

var mortarColor = color.Color{R: 255, G: 255, B: 127, A: 80}

type (
	Position = geometry.Posn[float64]
	Velocity = geometry.Dims[float64]
)

// Projectile moves ballistically under gravity
type Projectile struct {
	Position Position
	Velocity Velocity
}

// Update advances p by dt seconds under gravity g
func (p *Projectile) Update(dt, g float64) {
	p.Position = p.Position.Plus(p.Velocity.Scale(dt))
	p.Velocity.Height += g * dt
}

func randomProjectile(rng *random.Random, at Position, minSpeed, maxSpeed, minDegrees, maxDegrees float64) Projectile {
	speed, _ := rng.BetweenFloat(minSpeed, maxSpeed)
	degrees, _ := rng.BetweenFloat(minDegrees, maxDegrees)
	rad := degrees * math.Pi / 180
	return Projectile{Position: at, Velocity: Velocity{Width: speed * math.Cos(rad), Height: speed * math.Sin(rad)}}
}

// Stage is where a firework is in its life
type Stage int

const (
	StageMortar Stage = iota
	StageStars
	StageDone
)

// Firework is a mortar that bursts into stars when its fuse runs out
type Firework struct {
	Stage     Stage
	Mortar    Projectile
	Stars     []Projectile
	StarColor int
	StageTime float64
}

// Update returns 1 on the frame the mortar explodes, otherwise 0
func (f *Firework) Update(dt, g float64) int {
	switch f.Stage {
	case StageMortar:
		if f.StageTime -= dt; f.StageTime <= 0 {
			for i := range f.Stars {
				f.Stars[i].Position = f.Mortar.Position
				f.Stars[i].Velocity = f.Stars[i].Velocity.Add(f.Mortar.Velocity)
			}
			f.StageTime = burnSeconds
			f.Stage = StageStars
			return 1
		}
		f.Mortar.Update(dt, g)
	case StageStars:
		if f.StageTime -= dt; f.StageTime <= 0 {
			f.Stage = StageDone
			return 0
		}
		for i := range f.Stars {
			f.Stars[i].Update(dt, g)
		}
	}
	return 0
}

// Model holds every live firework
// Scale multiplies speeds and gravity so the show fits the window
type Model struct {
	Fireworks []Firework
	Scale     float64
}

// Update advances every firework, drops finished ones and returns the
// number of explosions
func (m *Model) Update(dt float64) int {
	explosions := 0
	for i := range m.Fireworks {
		explosions += m.Fireworks[i].Update(dt, gravity*m.scale())
	}
	live := m.Fireworks[:0]
	for _, f := range m.Fireworks {
		if f.Stage != StageDone {
			live = append(live, f)
		}
	}
	clear(m.Fireworks[len(live):])
	m.Fireworks = live
	return explosions
}

// AddRandom launches a firework from p0
func (m *Model) AddRandom(rng *random.Random, p0 Position) {
	s := m.scale()
	mortar := randomProjectile(rng, p0, minLaunchSpeed*s, maxLaunchSpeed*s,
		-90-maxLaunchAngle, -90+maxLaunchAngle)

	count, _ := rng.Between(minStars, maxStars)
	stars := make([]Projectile, count)
	for i := range stars {
		stars[i] = randomProjectile(rng, Position{}, minStarSpeed*s, maxStarSpeed*s, 0, 360)
	}
	colorIndex, _ := rng.UpTo(numberOfColors)

	m.Fireworks = append(m.Fireworks, Firework{
		Stage:     StageMortar,
		Mortar:    mortar,
		Stars:     stars,
		StarColor: colorIndex,
		StageTime: fuseSeconds,
	})
}

func (m *Model) scale() float64 {
	if m.Scale <= 0 {
		return 1
	}
	return m.Scale
}

// view holds the sprites and sounds
type view struct {
	fps    *sprites.TextSprite
	load   *sprites.TextSprite
	mortar *sprites.CircleSprite
	stars  []*sprites.CircleSprite
	pop    *audio.SoundEffect
}

func newView(mixer *audio.Mixer, log *slog.Logger) (*view, error) {
	v := &view{
		fps:  sprites.NewTextSprite("", nil),
		load: sprites.NewTextSprite("", nil),
	}

	var err error
	if v.mortar, err = sprites.NewCircleSprite(mortarRadius, mortarColor); err != nil {
		return nil, err
	}
	hue, dhue := 1.0, 360.0/numberOfColors
	for range numberOfColors {
		star, err := sprites.NewCircleSprite(starRadius, color.FromHSLA(hue, .75, .75, .75))
		if err != nil {
			return nil, err
		}
		v.stars = append(v.stars, star)
		hue += dhue
	}

	if mixer == nil || !mixer.IsEnabled() {
		return v, nil
	}
	if pop, ok := mixer.TryLoadEffect("pop.ogg"); ok {
		v.pop = pop
	} else if v.pop, err = mixer.Synthesize("pop", audio.Pop()...); err != nil {
		log.Warn("no pop sound", "error", err)
	}
	return v, nil
}

// Fireworks is the game
type Fireworks struct {
	engine.Base
	log    *slog.Logger
	model  Model
	view   *view
	paused bool
}

func NewFireworks(log *slog.Logger) *Fireworks {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Fireworks{log: log}
}

func (f *Fireworks) InitialWindowDimensions() geometry.Dimensions {
	return sceneDimensions
}

func (f *Fireworks) InitialWindowTitle() string {
	return "Fireworks"
}

func (f *Fireworks) OnStart() error {
	v, err := newView(f.Mixer(), f.log)
	if err != nil {
		return err
	}
	f.view = v
	f.Prepare(v.mortar)
	for _, s := range v.stars {
		f.Prepare(s)
	}
	return nil
}

func (f *Fireworks) OnKey(key event.Key) {
	switch key {
	case event.MustKeyCode('q'):
		f.Quit()
	case event.MustKeyCode('f'):
		w, err := f.Window()
		if err != nil {
			f.log.Error("no window", "error", err)
			return
		}
		if err := w.SetFullscreen(!w.Fullscreen()); err != nil {
			f.log.Warn("fullscreen toggle", "error", err)
		}
	case event.MustKeyCode('p'):
		f.paused = !f.paused
	case event.MustKeyCode(' '):
		if f.paused {
			return
		}
		w, err := f.Window()
		if err != nil {
			return
		}
		dims := w.Dimensions()
		f.launch(Position{X: float64(dims.Width) / 2, Y: float64(dims.Height)})
	}
}

func (f *Fireworks) OnMouseUp(_ event.MouseButton, at geometry.Position) {
	if f.paused {
		return
	}
	f.launch(geometry.ConvertPosn[float64](at))
}

func (f *Fireworks) launch(p0 Position) {
	if w, err := f.Window(); err == nil {
		f.model.Scale = float64(w.Dimensions().Height) / float64(sceneDimensions.Height)
	}
	f.model.AddRandom(f.Random(), p0)
}

func (f *Fireworks) OnFrame(dt float64) {
	if f.paused {
		return
	}
	explosions := f.model.Update(dt)
	if f.view == nil || f.view.pop.Empty() {
		return
	}
	mixer := f.Mixer()
	for range explosions {
		if mixer.TryPlayEffect(f.view.pop, 1).Empty() {
			f.log.Debug("pop dropped")
		}
	}
}

func (f *Fireworks) Draw(set *sprites.Set) {
	if f.view == nil {
		return
	}
	f.drawFireworks(set)
	f.drawStats(set)
}

func (f *Fireworks) drawFireworks(set *sprites.Set) {
	for _, fw := range f.model.Fireworks {
		switch fw.Stage {
		case StageMortar:
			set.Add(f.view.mortar, geometry.ConvertPosn[int](fw.Mortar.Position), 0)
		case StageStars:
			star := f.view.stars[fw.StarColor]
			for _, s := range fw.Stars {
				set.Add(star, geometry.ConvertPosn[int](s.Position), 0)
			}
		}
	}
}

func (f *Fireworks) drawStats(set *sprites.Set) {
	margin := geometry.Dimensions{Width: 2, Height: 1}

	f.view.fps.Reconfigure(sprites.NewTextBuilder(nil).Addf("%.3g", f.FrameRate()))
	f.view.load.Reconfigure(sprites.NewTextBuilder(nil).Addf("%.0f%%", f.LoadPercent()))

	set.Add(f.view.fps, geometry.PosnFromDims(margin), 1)

	w, err := f.Window()
	if err != nil {
		return
	}
	load := geometry.Position{X: w.Dimensions().Width}.
		DownLeftBy(margin).
		LeftBy(f.view.load.Dimensions().Width)
	set.Add(f.view.load, load, 1)
}
