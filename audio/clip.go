package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/ge211/errs"
)

// MusicTrack is an encoded music file, decoded while it plays
// A nil track is empty
type MusicTrack struct {
	name string
	data []byte
}

func (t *MusicTrack) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Empty reports whether there is nothing to play
func (t *MusicTrack) Empty() bool {
	return t == nil || len(t.data) == 0
}

func (t *MusicTrack) open() (beep.StreamSeekCloser, beep.Format, error) {
	return decode(t.name, t.data)
}

// SoundEffect is a clip held fully decoded in memory at the mixer's rate
// A nil effect is empty
type SoundEffect struct {
	name   string
	buffer *beep.Buffer
}

func (e *SoundEffect) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

func (e *SoundEffect) Empty() bool {
	return e == nil || e.buffer == nil || e.buffer.Len() == 0
}

// Duration returns the play length
func (e *SoundEffect) Duration() time.Duration {
	if e.Empty() {
		return 0
	}
	return e.buffer.Format().SampleRate.D(e.buffer.Len())
}

func (e *SoundEffect) streamer() beep.StreamSeeker {
	return e.buffer.Streamer(0, e.buffer.Len())
}

// decode picks a decoder by file extension
func decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	rc := io.NopCloser(bytes.NewReader(data))

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		s, format, err = wav.Decode(bytes.NewReader(data))
	case ".ogg", ".oga":
		s, format, err = vorbis.Decode(rc)
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	default:
		err = fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, beep.Format{}, errs.AudioLoad(name, err)
	}
	return s, format, nil
}
