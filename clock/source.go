// Package clock provides time sources, timers and the frame clock that
// measures frame rate and load for the engine loop.
package clock

import (
	"sync"
	"time"
)

// Source provides the current time
type Source interface {
	Now() time.Time
}

// System provides the real system time with monotonic clock readings
type System struct{}

// NewSystem creates a new monotonic time source
func NewSystem() *System {
	return &System{}
}

// Now returns the current time with monotonic clock reading
func (System) Now() time.Time {
	return time.Now()
}

// Fake provides a controllable time source for testing
type Fake struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewFake creates a fake source starting at the given time
func NewFake(start time.Time) *Fake {
	return &Fake{currentTime: start}
}

// Now returns the current fake time
func (f *Fake) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.currentTime
}

// SetTime sets the current time
func (f *Fake) SetTime(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentTime = t
}

// Advance moves the current time forward by d
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentTime = f.currentTime.Add(d)
}

// Seconds converts a float number of seconds to a Duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func sourceOrSystem(src Source) Source {
	if src == nil {
		return System{}
	}
	return src
}
