package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is an audio device that pulls samples from a streamer
type Output interface {
	Start(src beep.Streamer, format beep.Format, buffer time.Duration) error
	Close() error
	Name() string
}

// outputsFor lists the outputs to try, in order, for a configured backend
func outputsFor(backend string, log *slog.Logger) []Output {
	switch backend {
	case "speaker":
		return []Output{&speakerOutput{}}
	case "pipe":
		return []Output{&pipeOutput{log: log}}
	case "none":
		return nil
	default:
		return []Output{&speakerOutput{}, &pipeOutput{log: log}}
	}
}

// speakerOutput plays through the platform sound API
type speakerOutput struct {
	started bool
}

func (o *speakerOutput) Name() string { return "speaker" }

func (o *speakerOutput) Start(src beep.Streamer, format beep.Format, buffer time.Duration) error {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(buffer)); err != nil {
		return err
	}
	speaker.Play(src)
	o.started = true
	return nil
}

func (o *speakerOutput) Close() error {
	if !o.started {
		return nil
	}
	o.started = false
	speaker.Clear()
	speaker.Close()
	return nil
}

// NullOutput accepts a stream and plays nothing
// Samples advance only when Pull is called, so tests control timing
type NullOutput struct {
	mu     sync.Mutex
	src    beep.Streamer
	format beep.Format
	closed bool
}

func (o *NullOutput) Name() string { return "null" }

func (o *NullOutput) Start(src beep.Streamer, format beep.Format, _ time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.src, o.format, o.closed = src, format, false
	return nil
}

func (o *NullOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.src = nil
	return nil
}

// Closed reports whether the mixer released the output
func (o *NullOutput) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Pull streams d worth of samples and returns them
func (o *NullOutput) Pull(d time.Duration) [][2]float64 {
	o.mu.Lock()
	src, n := o.src, o.format.SampleRate.N(d)
	o.mu.Unlock()
	if src == nil || n <= 0 {
		return nil
	}
	samples := make([][2]float64, n)
	src.Stream(samples)
	return samples
}
