package clock

import "time"

const (
	// SamplePeriod is the number of frames per performance sample
	SamplePeriod = 10
	// BufferSize is the number of samples averaged for the frame rate
	BufferSize = 8
	// decayRate weights the previous load estimate against the newest sample
	decayRate = 0.5
)

// perfClock accumulates busy and real time over sample periods
type perfClock struct {
	busy *PausableTimer
	real *Timer

	frameCount   int
	samples      *RingBuffer[time.Duration]
	busyDecaySum time.Duration
	realDecaySum time.Duration
	realSum      time.Duration
	fps          float64
	load         float64
}

func newPerfClock(src Source) perfClock {
	return perfClock{
		busy:    NewPausableTimer(src, true),
		real:    NewTimer(src),
		samples: NewRingBuffer[time.Duration](BufferSize),
	}
}

func (p *perfClock) beginCompute() {
	p.busy.Resume()
}

func (p *perfClock) endCompute() {
	p.busy.Pause()

	p.frameCount++
	if p.frameCount != SamplePeriod {
		return
	}
	p.frameCount = 0

	busySample := p.busy.Reset()
	realSample := p.real.Reset()

	p.busyDecaySum = time.Duration(decayRate*float64(p.busyDecaySum-busySample)) + busySample
	p.realDecaySum = time.Duration(decayRate*float64(p.realDecaySum-realSample)) + realSample
	p.realSum += realSample - p.samples.Rotate(realSample)

	if p.realSum > 0 {
		p.fps = float64(SamplePeriod*p.samples.Len()) / p.realSum.Seconds()
	}
	if p.realDecaySum > 0 {
		p.load = p.busyDecaySum.Seconds() / p.realDecaySum.Seconds()
	}
}

// FrameClock tracks frame boundaries for the engine loop
// MarkFrame begins a frame's busy interval and MarkPresent ends it
type FrameClock struct {
	src        Source
	frameStart time.Time
	prevLength time.Duration
	perf       perfClock
}

// NewFrameClock creates a frame clock with an initial previous-frame length
func NewFrameClock(src Source, expectedFrameLength time.Duration) *FrameClock {
	src = sourceOrSystem(src)
	return &FrameClock{
		src:        src,
		frameStart: src.Now(),
		prevLength: expectedFrameLength,
		perf:       newPerfClock(src),
	}
}

// MarkFrame starts a new frame at the source's current time
func (c *FrameClock) MarkFrame() {
	c.MarkFrameAt(c.src.Now())
}

// MarkFrameAt starts a new frame at now
func (c *FrameClock) MarkFrameAt(now time.Time) {
	c.perf.beginCompute()
	c.prevLength = now.Sub(c.frameStart)
	c.frameStart = now
}

// MarkPresent ends the busy part of the current frame
func (c *FrameClock) MarkPresent() {
	c.perf.endCompute()
}

// FrameStartTime returns when the current frame began
func (c *FrameClock) FrameStartTime() time.Time {
	return c.frameStart
}

// PrevFrameLength returns the length of the previous frame
func (c *FrameClock) PrevFrameLength() time.Duration {
	return c.prevLength
}

// FrameRate returns frames per second averaged over recent samples
func (c *FrameClock) FrameRate() float64 {
	return c.perf.fps
}

// LoadFraction returns the decayed ratio of busy time to real time
func (c *FrameClock) LoadFraction() float64 {
	return c.perf.load
}

// LoadPercent returns LoadFraction as a percentage
func (c *FrameClock) LoadPercent() float64 {
	return 100 * c.perf.load
}
