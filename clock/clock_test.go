package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeSource(t *testing.T) {
	f := NewFake(epoch)
	assert.Equal(t, epoch, f.Now())

	f.Advance(time.Second)
	assert.Equal(t, epoch.Add(time.Second), f.Now())

	f.SetTime(epoch)
	assert.Equal(t, epoch, f.Now())
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, Seconds(1.5))
	assert.Equal(t, time.Duration(0), Seconds(0))
}

func TestTimer(t *testing.T) {
	f := NewFake(epoch)
	tm := NewTimer(f)

	assert.Equal(t, epoch, tm.StartTime())
	f.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, tm.ElapsedTime())

	assert.Equal(t, 3*time.Second, tm.Reset())
	assert.Equal(t, time.Duration(0), tm.ElapsedTime())
	assert.Equal(t, epoch.Add(3*time.Second), tm.StartTime())
}

func TestFutureTimer(t *testing.T) {
	f := NewFake(epoch)
	tm := FutureTimer(f, 2*time.Second)

	assert.Negative(t, tm.ElapsedTime())
	f.Advance(2 * time.Second)
	assert.Equal(t, time.Duration(0), tm.ElapsedTime())
	f.Advance(time.Second)
	assert.Equal(t, time.Second, tm.ElapsedTime())
}

func TestPausableTimerExcludesPausedTime(t *testing.T) {
	f := NewFake(epoch)
	tm := NewPausableTimer(f, false)
	require.False(t, tm.IsPaused())

	f.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, tm.Pause())
	assert.True(t, tm.IsPaused())

	f.Advance(5 * time.Second)
	assert.Equal(t, 2*time.Second, tm.ElapsedTime())
	assert.Equal(t, 2*time.Second, tm.Pause(), "second pause is a no-op")

	tm.Resume()
	tm.Resume()
	f.Advance(time.Second)
	assert.Equal(t, 3*time.Second, tm.ElapsedTime())
}

func TestPausableTimerReset(t *testing.T) {
	f := NewFake(epoch)

	running := NewPausableTimer(f, false)
	f.Advance(time.Second)
	assert.Equal(t, time.Second, running.Reset())
	assert.False(t, running.IsPaused())
	assert.Equal(t, time.Duration(0), running.ElapsedTime())

	paused := NewPausableTimer(f, true)
	assert.Equal(t, time.Duration(0), paused.ElapsedTime())
	paused.Resume()
	f.Advance(time.Second)
	paused.Pause()
	assert.Equal(t, time.Second, paused.Reset())
	assert.True(t, paused.IsPaused(), "reset keeps pause state")
	assert.Equal(t, time.Duration(0), paused.ElapsedTime())
}

func TestRingBufferRotate(t *testing.T) {
	rb := NewRingBuffer[int](3)
	assert.True(t, rb.Empty())

	assert.Equal(t, 0, rb.Rotate(1))
	assert.Equal(t, 0, rb.Rotate(2))
	assert.Equal(t, 0, rb.Rotate(3))
	assert.True(t, rb.Full())
	assert.Equal(t, 3, rb.Len())

	assert.Equal(t, 1, rb.Rotate(4))
	assert.Equal(t, 2, rb.Rotate(5))
	assert.Equal(t, 3, rb.Rotate(6))
	assert.Equal(t, 4, rb.Rotate(7))
	assert.Equal(t, 3, rb.Cap())
}

func TestRingBufferZeroCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { NewRingBuffer[int](0) })
}

func TestFrameClockPrevFrameLength(t *testing.T) {
	f := NewFake(epoch)
	fc := NewFrameClock(f, 16*time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, fc.PrevFrameLength())

	f.Advance(10 * time.Millisecond)
	fc.MarkFrame()
	assert.Equal(t, 10*time.Millisecond, fc.PrevFrameLength())
	assert.Equal(t, epoch.Add(10*time.Millisecond), fc.FrameStartTime())
}

func TestFrameClockRateAndLoad(t *testing.T) {
	f := NewFake(epoch)
	fc := NewFrameClock(f, 0)

	runFrames := func(n int) {
		for range n {
			fc.MarkFrame()
			f.Advance(4 * time.Millisecond)
			fc.MarkPresent()
			f.Advance(6 * time.Millisecond)
		}
	}

	runFrames(SamplePeriod - 1)
	assert.Zero(t, fc.FrameRate(), "no sample before a full period")

	runFrames(1)
	// One sample: 94ms real, 40ms busy, each decayed by half from zero
	assert.InDelta(t, 10/0.094, fc.FrameRate(), 0.01)
	assert.InDelta(t, 20.0/47.0, fc.LoadFraction(), 1e-6)
	assert.InDelta(t, 100*20.0/47.0, fc.LoadPercent(), 1e-4)

	runFrames(SamplePeriod)
	// Second sample: 100ms real, 40ms busy
	assert.InDelta(t, 20/0.194, fc.FrameRate(), 0.01)
	assert.InDelta(t, 30.0/73.5, fc.LoadFraction(), 1e-6)
}
