package clock

import "time"

// Timer measures time elapsed since its start
type Timer struct {
	src   Source
	start time.Time
}

// NewTimer creates a timer started now; a nil source uses the system clock
func NewTimer(src Source) *Timer {
	src = sourceOrSystem(src)
	return &Timer{src: src, start: src.Now()}
}

// FutureTimer creates a timer whose start time is d in the future
// Its elapsed time is negative until that moment arrives
func FutureTimer(src Source, d time.Duration) *Timer {
	t := NewTimer(src)
	t.start = t.start.Add(d)
	return t
}

// StartTime returns when the timer started or was last reset
func (t *Timer) StartTime() time.Time {
	return t.start
}

// ElapsedTime returns the time since the start
func (t *Timer) ElapsedTime() time.Duration {
	return t.src.Now().Sub(t.start)
}

// Reset restarts the timer and returns the time elapsed before the reset
func (t *Timer) Reset() time.Duration {
	now := t.src.Now()
	elapsed := now.Sub(t.start)
	t.start = now
	return elapsed
}

// PausableTimer measures elapsed time, excluding time spent paused
type PausableTimer struct {
	src Source

	isPaused bool

	// fakeStart is valid while running: now - fakeStart is the elapsed time
	fakeStart time.Time
	// elapsed is valid while paused
	elapsed time.Duration
}

// NewPausableTimer creates a timer, optionally starting in the paused state
func NewPausableTimer(src Source, startPaused bool) *PausableTimer {
	src = sourceOrSystem(src)
	t := &PausableTimer{src: src, isPaused: startPaused}
	if !startPaused {
		t.fakeStart = src.Now()
	}
	return t
}

// IsPaused returns current pause state
func (t *PausableTimer) IsPaused() bool {
	return t.isPaused
}

// ElapsedTime returns the running time since start or last reset
func (t *PausableTimer) ElapsedTime() time.Duration {
	if t.isPaused {
		return t.elapsed
	}
	return t.src.Now().Sub(t.fakeStart)
}

// Pause stops accumulating time and returns the elapsed time so far
// Pausing a paused timer has no effect
func (t *PausableTimer) Pause() time.Duration {
	if !t.isPaused {
		t.elapsed = t.src.Now().Sub(t.fakeStart)
		t.isPaused = true
	}
	return t.elapsed
}

// Resume continues accumulating time; resuming a running timer has no effect
func (t *PausableTimer) Resume() {
	if t.isPaused {
		t.fakeStart = t.src.Now().Add(-t.elapsed)
		t.isPaused = false
	}
}

// Reset zeroes the elapsed time, returning its previous value
// The pause state is unchanged
func (t *PausableTimer) Reset() time.Duration {
	if t.isPaused {
		result := t.elapsed
		t.elapsed = 0
		return result
	}
	now := t.src.Now()
	result := now.Sub(t.fakeStart)
	t.fakeStart = now
	return result
}
