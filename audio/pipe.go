package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// pipeOutput feeds raw s16le frames to an external player or OSS device
type pipeOutput struct {
	log     *slog.Logger
	backend *BackendConfig

	cmd   *exec.Cmd
	stdin io.WriteCloser
	oss   *os.File

	stop chan struct{}
	wg   sync.WaitGroup
}

func (o *pipeOutput) Name() string {
	if o.backend != nil {
		return "pipe:" + o.backend.Name
	}
	return "pipe"
}

func (o *pipeOutput) Start(src beep.Streamer, format beep.Format, buffer time.Duration) error {
	backend, err := DetectBackend(int(format.SampleRate))
	if err != nil {
		return err
	}
	o.backend = backend

	var w io.Writer
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return err
		}
		o.oss, w = f, f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return err
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return err
		}
		o.cmd, o.stdin, w = cmd, stdin, stdin
	}

	if buffer <= 0 {
		buffer = 20 * time.Millisecond
	}
	o.stop = make(chan struct{})
	o.wg.Add(1)
	go o.loop(w, src, buffer, format.SampleRate.N(buffer))
	return nil
}

// loop pulls one buffer per tick; the player's own latency absorbs jitter
func (o *pipeOutput) loop(w io.Writer, src beep.Streamer, period time.Duration, n int) {
	defer o.wg.Done()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	samples := make([][2]float64, n)
	out := make([]byte, n*4)

	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			src.Stream(samples)
			samplesToBytes(samples, out)
			if _, err := w.Write(out); err != nil {
				if o.log != nil {
					o.log.Warn("audio output stopped", "backend", o.Name(), "error", fmt.Errorf("%w: %v", ErrPipeClosed, err))
				}
				return
			}
		}
	}
}

func (o *pipeOutput) Close() error {
	if o.stop == nil {
		return nil
	}
	close(o.stop)
	o.wg.Wait()
	o.stop = nil

	var err error
	if o.stdin != nil {
		err = o.stdin.Close()
	}
	if o.oss != nil {
		err = o.oss.Close()
	}
	if o.cmd != nil && o.cmd.Process != nil {
		o.cmd.Process.Kill()
		o.cmd.Wait()
	}
	return err
}

// samplesToBytes converts stereo frames to interleaved int16 LE with a soft
// limiter above 0.8
func samplesToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(limit(v)*32767)))
		}
	}
}

func limit(v float64) float64 {
	switch {
	case v > 0.8:
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	case v < -0.8:
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}
	return max(-1, min(1, v))
}
