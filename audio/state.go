// Package audio mixes one music track and a fixed set of effect channels
// into a single beep stream.
package audio

import (
	"math"

	"github.com/gopxl/beep/effects"
)

// State is the play state of the music track or of an effect handle
type State int

const (
	StateDetached State = iota
	StatePlaying
	StateFadingOut
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StatePlaying:
		return "playing"
	case StateFadingOut:
		return "fading_out"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// DefaultChannels is the number of effect channels when none is configured
const DefaultChannels = 8

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// setVolume maps a unit volume onto a base-2 beep volume
// log2(0) is -Inf, so zero is expressed as Silent
func setVolume(v *effects.Volume, unit float64) {
	unit = clampUnit(unit)
	if unit == 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(unit)
}
