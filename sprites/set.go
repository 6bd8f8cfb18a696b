package sprites

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/lixenwraith/ge211/clock"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/render"
)

// Selector picks the sprite to show for a given age
type Selector func(age time.Duration) Sprite

// MultiplexedSprite shows a different sprite depending on the time since it
// was created or last reset
type MultiplexedSprite struct {
	selector Selector
	since    *clock.Timer
}

// NewMultiplexedSprite uses src for age; nil means the system clock
func NewMultiplexedSprite(selector Selector, src clock.Source) *MultiplexedSprite {
	return &MultiplexedSprite{selector: selector, since: clock.NewTimer(src)}
}

// Reset restarts the age at zero
func (m *MultiplexedSprite) Reset() {
	m.since.Reset()
}

func (m *MultiplexedSprite) current() Sprite {
	return m.selector(m.since.ElapsedTime())
}

func (m *MultiplexedSprite) Dimensions() geometry.Dimensions {
	if s := m.current(); s != nil {
		return s.Dimensions()
	}
	return geometry.Dimensions{}
}

// Render draws the sprite selected for the current age; nil draws nothing
func (m *MultiplexedSprite) Render(dst *render.Canvas, at geometry.Position, t geometry.Transform) error {
	if s := m.current(); s != nil {
		return s.Render(dst, at, t)
	}
	return nil
}

type placed struct {
	sprite    Sprite
	at        geometry.Position
	z         int
	transform geometry.Transform
}

// Set collects the sprites to draw in one frame
type Set struct {
	placed []placed
}

// NewSet returns an empty set
func NewSet() *Set {
	return &Set{}
}

// Add places s at `at` with depth z and no transform
func (s *Set) Add(sp Sprite, at geometry.Position, z int) *Set {
	return s.AddTransformed(sp, at, z, geometry.Identity())
}

// AddTransformed places s at `at` with depth z drawn under t
// Higher z draws on top; equal z draws in insertion order
func (s *Set) AddTransformed(sp Sprite, at geometry.Position, z int, t geometry.Transform) *Set {
	s.placed = append(s.placed, placed{sprite: sp, at: at, z: z, transform: t})
	return s
}

// Len returns the number of placed sprites
func (s *Set) Len() int {
	return len(s.placed)
}

// Reset empties the set, keeping its capacity
func (s *Set) Reset() {
	clear(s.placed)
	s.placed = s.placed[:0]
}

// Render paints every sprite onto dst in z order
// Stops at the first sprite that fails
func (s *Set) Render(dst *render.Canvas) error {
	slices.SortStableFunc(s.placed, func(a, b placed) int { return cmp.Compare(a.z, b.z) })
	for i, p := range s.placed {
		if err := p.sprite.Render(dst, p.at, p.transform); err != nil {
			return fmt.Errorf("sprite %d at %v: %w", i, p.at, err)
		}
	}
	return nil
}
