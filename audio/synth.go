package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/session"
)

// Wave selects an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// Voice is one oscillator with its envelope
type Voice struct {
	Wave     Wave
	Freq     float64 // Hz, ignored for noise
	Delay    time.Duration
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Decay    float64 // exponential decay per second, 0 for none
	Gain     float64
}

// NoteFreq returns the equal-tempered frequency of a MIDI note (A4 = 69)
func NoteFreq(midi int) float64 {
	if midi < 0 || midi > 127 {
		return 0
	}
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// Pop is a short noise burst over a low thump
func Pop() []Voice {
	return []Voice{
		{Wave: WaveNoise, Duration: 180 * time.Millisecond, Attack: 2 * time.Millisecond, Decay: 25, Gain: 0.5},
		{Wave: WaveSine, Freq: 90, Duration: 120 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 60 * time.Millisecond, Decay: 20, Gain: 0.6},
	}
}

// Bell is a fundamental A5 with an octave overtone
func Bell() []Voice {
	return []Voice{
		{Wave: WaveSine, Freq: NoteFreq(81), Duration: 400 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 350 * time.Millisecond, Gain: 0.7},
		{Wave: WaveSine, Freq: NoteFreq(93), Duration: 400 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 200 * time.Millisecond, Gain: 0.3},
	}
}

// Buzz is a harsh low sawtooth
func Buzz() []Voice {
	return []Voice{
		{Wave: WaveSaw, Freq: 100, Duration: 150 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 50 * time.Millisecond, Gain: 0.4},
	}
}

// Chime is two rising square notes, B5 then E6
func Chime() []Voice {
	return []Voice{
		{Wave: WaveSquare, Freq: NoteFreq(83), Duration: 80 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.3},
		{Wave: WaveSquare, Freq: NoteFreq(88), Delay: 80 * time.Millisecond, Duration: 200 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 150 * time.Millisecond, Gain: 0.3},
	}
}

// Synthesize renders voices into an in-memory effect
func (m *Mixer) Synthesize(name string, voices ...Voice) (*SoundEffect, error) {
	if err := session.Check("Audio loading"); err != nil {
		return nil, err
	}
	if !m.enabled {
		return nil, errs.MixerNotEnabled()
	}
	if len(voices) == 0 {
		return nil, errs.ClientLogic("Mixer.Synthesize: no voices")
	}

	sr := m.format.SampleRate
	total := 0
	streams := make([]beep.Streamer, 0, len(voices))
	for i, v := range voices {
		s, err := voiceStreamer(sr, v)
		if err != nil {
			return nil, errs.ClientLogic("Mixer.Synthesize: voice %d: %v", i, err)
		}
		streams = append(streams, s)
		total = max(total, sr.N(v.Delay)+sr.N(v.Duration))
	}

	buf := beep.NewBuffer(m.format)
	buf.Append(beep.Take(total, beep.Mix(streams...)))
	return &SoundEffect{name: name, buffer: buf}, nil
}

func voiceStreamer(sr beep.SampleRate, v Voice) (beep.Streamer, error) {
	if v.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v", v.Duration)
	}

	var (
		osc beep.Streamer
		err error
	)
	switch v.Wave {
	case WaveSine:
		osc, err = generators.SineTone(sr, v.Freq)
	case WaveSquare:
		osc, err = generators.SquareTone(sr, v.Freq)
	case WaveSaw:
		osc, err = generators.SawtoothTone(sr, v.Freq)
	case WaveTriangle:
		osc, err = generators.TriangleTone(sr, v.Freq)
	case WaveNoise:
		osc = &noise{seed: 0x5eed}
	default:
		err = fmt.Errorf("unknown wave %d", v.Wave)
	}
	if err != nil {
		return nil, err
	}

	n := sr.N(v.Duration)
	shaped := &envelope{
		source:  beep.Take(n, osc),
		rate:    sr,
		total:   n,
		attack:  sr.N(v.Attack),
		release: sr.N(v.Release),
		decay:   v.Decay,
	}
	gain := &effects.Volume{Streamer: shaped, Base: 2}
	setVolume(gain, v.Gain)

	if v.Delay <= 0 {
		return gain, nil
	}
	return beep.Seq(beep.Silence(sr.N(v.Delay)), gain), nil
}

func expDecay(rate, seconds float64) float64 {
	return math.Exp(-rate * seconds)
}
