package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/ge211/errs"
)

// EffectHandle controls one playing effect
// A nil handle is empty; it is what TryPlayEffect returns on failure
type EffectHandle struct {
	mixer   *Mixer
	effect  *SoundEffect
	channel int
	state   State
	volume  float64
	ctrl    *beep.Ctrl
	gain    *effects.Volume
	done    bool
}

// Empty reports whether h refers to no effect
func (h *EffectHandle) Empty() bool {
	return h == nil
}

// Effect returns the effect being played
func (h *EffectHandle) Effect() *SoundEffect {
	if h == nil {
		return nil
	}
	return h.effect
}

// State is StateDetached once the effect finished or was stopped
func (h *EffectHandle) State() State {
	if h == nil {
		return StateDetached
	}
	return h.state
}

// Volume is 0 once detached
func (h *EffectHandle) Volume() float64 {
	if h.State() == StateDetached {
		return 0
	}
	return h.volume
}

// SetVolume clamps v to [0, 1]; no-op once detached
func (h *EffectHandle) SetVolume(v float64) {
	if h.State() == StateDetached {
		return
	}
	h.volume = clampUnit(v)
	h.mixer.mu.Lock()
	setVolume(h.gain, h.volume)
	h.mixer.mu.Unlock()
}

// Pause is idempotent while paused
func (h *EffectHandle) Pause() error {
	switch h.State() {
	case StateDetached:
		return errs.ClientLogic("EffectHandle.Pause: detached")
	case StateFadingOut:
		return errs.ClientLogic("EffectHandle.Pause: fading out")
	case StatePaused:
		return nil
	}
	h.mixer.mu.Lock()
	h.ctrl.Paused = true
	h.mixer.mu.Unlock()
	h.state = StatePaused
	return nil
}

// Resume is idempotent while playing
func (h *EffectHandle) Resume() error {
	switch h.State() {
	case StateDetached:
		return errs.ClientLogic("EffectHandle.Resume: detached")
	case StateFadingOut:
		return errs.ClientLogic("EffectHandle.Resume: fading out")
	case StatePlaying:
		return nil
	}
	h.mixer.mu.Lock()
	h.ctrl.Paused = false
	h.mixer.mu.Unlock()
	h.state = StatePlaying
	return nil
}

// Stop halts the effect and frees its channel
func (h *EffectHandle) Stop() error {
	switch h.State() {
	case StateDetached:
		return errs.ClientLogic("EffectHandle.Stop: detached")
	case StateFadingOut:
		return errs.ClientLogic("EffectHandle.Stop: fading out")
	}
	h.mixer.mu.Lock()
	h.mixer.unregister(h.channel)
	h.mixer.mu.Unlock()
	h.mixer.publish()
	return nil
}
