package main

import (
	"context"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ge211/config"
	"github.com/lixenwraith/ge211/engine"
	"github.com/lixenwraith/ge211/event"
	"github.com/lixenwraith/ge211/random"
)

func TestProjectile_Update(t *testing.T) {
	p := Projectile{Velocity: Velocity{Width: 10, Height: -20}}
	p.Update(0.5, gravity)

	assert.InDelta(t, 5, p.Position.X, 1e-9)
	assert.InDelta(t, -10, p.Position.Y, 1e-9)
	assert.InDelta(t, -20+gravity/2, p.Velocity.Height, 1e-9)
	assert.InDelta(t, 10, p.Velocity.Width, 1e-9)
}

func stubbedRandom(t *testing.T, stars, colorIndex int) *random.Random {
	t.Helper()
	rng := random.New()
	require.NoError(t, rng.Stub(stars, colorIndex))
	return rng
}

func TestModel_AddRandom(t *testing.T) {
	var m Model
	m.AddRandom(stubbedRandom(t, 50, 3), Position{X: 512, Y: 768})

	require.Len(t, m.Fireworks, 1)
	fw := m.Fireworks[0]
	assert.Equal(t, StageMortar, fw.Stage)
	assert.Equal(t, fuseSeconds, fw.StageTime)
	assert.Len(t, fw.Stars, 50)
	assert.Equal(t, 3, fw.StarColor)
	assert.Equal(t, Position{X: 512, Y: 768}, fw.Mortar.Position)

	v := fw.Mortar.Velocity
	speed := math.Hypot(v.Width, v.Height)
	assert.GreaterOrEqual(t, speed, float64(minLaunchSpeed)-1e-9)
	assert.Less(t, speed, float64(maxLaunchSpeed))
	assert.Negative(t, v.Height, "mortars fly upward")
	assert.LessOrEqual(t, math.Abs(v.Width), speed*math.Sin(maxLaunchAngle*math.Pi/180)+1e-9)

	for _, s := range fw.Stars {
		speed := math.Hypot(s.Velocity.Width, s.Velocity.Height)
		assert.GreaterOrEqual(t, speed, float64(minStarSpeed)-1e-9)
		assert.Less(t, speed, float64(maxStarSpeed))
	}
}

func TestModel_AddRandomScales(t *testing.T) {
	m := Model{Scale: 0.5}
	m.AddRandom(stubbedRandom(t, 40, 0), Position{})

	v := m.Fireworks[0].Mortar.Velocity
	speed := math.Hypot(v.Width, v.Height)
	assert.GreaterOrEqual(t, speed, minLaunchSpeed*0.5-1e-9)
	assert.Less(t, speed, maxLaunchSpeed*0.5)
}

func TestModel_Lifecycle(t *testing.T) {
	var m Model
	m.AddRandom(stubbedRandom(t, 40, 0), Position{X: 100, Y: 700})
	mortarVelocity := m.Fireworks[0].Mortar.Velocity
	starVelocity := m.Fireworks[0].Stars[0].Velocity

	assert.Zero(t, m.Update(1))
	assert.Equal(t, StageMortar, m.Fireworks[0].Stage)
	at := m.Fireworks[0].Mortar.Position

	assert.Equal(t, 1, m.Update(1), "fuse burns out")
	fw := m.Fireworks[0]
	assert.Equal(t, StageStars, fw.Stage)
	assert.Equal(t, at, fw.Stars[0].Position, "stars start where the mortar burst")
	assert.InDelta(t, starVelocity.Width+mortarVelocity.Width, fw.Stars[0].Velocity.Width, 1e-9)

	assert.Zero(t, m.Update(1.5))
	require.Len(t, m.Fireworks, 1)
	assert.Zero(t, m.Update(1))
	assert.Empty(t, m.Fireworks, "burnt out fireworks are removed")
}

func TestModel_CountsEveryExplosion(t *testing.T) {
	var m Model
	rng := stubbedRandom(t, 40, 1)
	m.AddRandom(rng, Position{})
	m.AddRandom(rng, Position{})
	m.Update(0.5)
	m.AddRandom(rng, Position{})

	assert.Equal(t, 2, m.Update(1.6))
	assert.Len(t, m.Fireworks, 3)
}

func TestFireworks_Keys(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	g := NewFireworks(nil)
	frames := 0

	cfg := config.Default()
	cfg.Audio.Enabled = false
	cfg.Frame.SoftwareFPS = 1000

	// space launches, p pauses and blocks launches, q quits
	check := &frameHook{Fireworks: g, frame: func(dt float64) {
		frames++
		switch frames {
		case 1:
			g.OnKey(event.MustKeyCode(' '))
			assert.Len(t, g.model.Fireworks, 1)
			g.OnKey(event.MustKeyCode('p'))
			g.OnKey(event.MustKeyCode(' '))
			assert.Len(t, g.model.Fireworks, 1)
			g.OnKey(event.MustKeyCode('f'))
		case 2:
			g.OnKey(event.MustKeyCode('q'))
		}
	}}

	require.NoError(t, engine.Run(context.Background(), check, cfg, engine.WithScreen(screen)))
	assert.Equal(t, 2, frames)
	assert.True(t, g.paused)
	assert.Equal(t, StageMortar, g.model.Fireworks[0].Stage, "paused model does not advance")
}

// frameHook observes frames after the game handles them
type frameHook struct {
	*Fireworks
	frame func(dt float64)
}

func (h *frameHook) OnFrame(dt float64) {
	h.Fireworks.OnFrame(dt)
	h.frame(dt)
}
