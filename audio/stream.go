package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// looper restarts its source from the beginning when forever is set
type looper struct {
	source  beep.StreamSeeker
	forever bool
}

func (l *looper) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.source.Stream(samples[filled:])
		filled += n
		if ok {
			continue
		}
		if !l.forever || l.source.Len() == 0 {
			return filled, filled > 0
		}
		if err := l.source.Seek(0); err != nil {
			return filled, filled > 0
		}
	}
	return filled, true
}

func (l *looper) Err() error { return l.source.Err() }

// fader ramps gain linearly toward 1 (fade in) or 0 (fade out)
// Reaching 0 on a fade out drains the stream
type fader struct {
	source  beep.Streamer
	gain    float64
	step    float64
	fading  bool
	drained bool
}

// newFader starts silent and reaches full gain after n samples; n <= 0
// starts at full gain
func newFader(source beep.Streamer, n int) *fader {
	if n <= 0 {
		return &fader{source: source, gain: 1}
	}
	return &fader{source: source, step: 1 / float64(n)}
}

// fadeOut ramps from the current gain to silence over n samples
func (f *fader) fadeOut(n int) {
	f.fading = true
	if n <= 0 {
		f.gain = 0
		f.step = 0
		return
	}
	f.step = -f.gain / float64(n)
}

func (f *fader) Stream(samples [][2]float64) (int, bool) {
	if f.drained || (f.fading && f.gain <= 0) {
		f.drained = true
		return 0, false
	}
	// pull no further than the end of the fade
	if f.step < 0 {
		if left := int(math.Ceil(f.gain / -f.step)); left < len(samples) {
			samples = samples[:left]
		}
	}

	n, ok := f.source.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= f.gain
		samples[i][1] *= f.gain

		if f.step == 0 {
			continue
		}
		f.gain += f.step
		switch {
		case f.step > 0 && f.gain >= 1:
			f.gain, f.step = 1, 0
		case f.step < 0 && f.gain <= 0:
			f.gain, f.step = 0, 0
			f.drained = true
			return i + 1, true
		}
	}
	return n, ok
}

func (f *fader) Err() error { return f.source.Err() }

// envelope shapes a voice: linear attack and release with optional
// exponential decay (per second)
type envelope struct {
	source  beep.Streamer
	rate    beep.SampleRate
	pos     int
	total   int
	attack  int
	release int
	decay   float64
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.source.Stream(samples)
	releaseStart := max(e.total-e.release, e.attack)

	for i := range samples[:n] {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.release > 0 && e.pos >= releaseStart:
			vol = float64(e.total-e.pos) / float64(e.release)
		}
		if e.decay > 0 {
			vol *= expDecay(e.decay, float64(e.pos)/float64(e.rate))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.source.Err() }

// noise is white noise from a fixed-seed LCG, so synthesized effects are
// reproducible
type noise struct {
	seed uint32
}

func (g *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		g.seed = g.seed*1103515245 + 12345
		v := float64(g.seed>>1)/float64(1<<31)*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }
