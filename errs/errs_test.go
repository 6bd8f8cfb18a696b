package errs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHierarchy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   []error
		not  []error
	}{
		{
			name: "client logic",
			err:  ClientLogic("bad %s", "call"),
			is:   []error{ErrClientLogic},
			not:  []error{ErrEnvironment, ErrHost},
		},
		{
			name: "session needed",
			err:  SessionNeeded("Loading audio"),
			is:   []error{ErrClientLogic},
			not:  []error{ErrEnvironment},
		},
		{
			name: "late paint",
			err:  &LatePaintError{Who: "CircleSprite"},
			is:   []error{ErrClientLogic},
		},
		{
			name: "random source",
			err:  &RandomSourceError{Kind: ErrRandomBounds, Message: "x"},
			is:   []error{ErrClientLogic, ErrRandomSource, ErrRandomBounds},
			not:  []error{ErrRandomEmptyStub},
		},
		{
			name: "logic",
			err:  Logic("broken"),
			is:   []error{ErrEnvironment},
			not:  []error{ErrHost, ErrClientLogic},
		},
		{
			name: "host",
			err:  Host("screen", errors.New("no tty")),
			is:   []error{ErrEnvironment, ErrHost},
		},
		{
			name: "file open",
			err:  &FileOpenError{Filename: "a.png", Reason: fs.ErrNotExist},
			is:   []error{ErrEnvironment, ErrHost, fs.ErrNotExist},
		},
		{
			name: "font",
			err:  &FontLoadError{Filename: "a.ttf"},
			is:   []error{ErrHost},
		},
		{
			name: "image",
			err:  &ImageLoadError{Filename: "a.png"},
			is:   []error{ErrHost},
		},
		{
			name: "mixer",
			err:  OutOfChannels(),
			is:   []error{ErrMixer, ErrOutOfChannels, ErrHost, ErrEnvironment},
			not:  []error{ErrAudioLoad, ErrClientLogic},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range tt.is {
				assert.ErrorIs(t, tt.err, target)
			}
			for _, target := range tt.not {
				assert.NotErrorIs(t, tt.err, target)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Could not open file: x.wav", (&FileOpenError{Filename: "x.wav"}).Error())
	assert.Equal(t, "Could not load font: f.ttf\n  (reason from host: bad table)",
		(&FontLoadError{Filename: "f.ttf", Reason: errors.New("bad table")}).Error())
	assert.Equal(t, "Could not load image: i.png", (&ImageLoadError{Filename: "i.png"}).Error())
	assert.Equal(t, "[Mixer] Could not load audio: m.ogg", AudioLoad("m.ogg", nil).Error())
	assert.Equal(t, "[Mixer] Could not play effect: out of channels", OutOfChannels().Error())
	assert.Equal(t, "[Mixer] Mixer is not enabled", MixerNotEnabled().Error())
	assert.Equal(t, "Apparent ge211 bug! oops", Logic("oops").Error())
	assert.Equal(t, "Host error", Host("", nil).Error())
	assert.Equal(t, "Host error: boom", Host("", errors.New("boom")).Error())

	assert.Contains(t, SessionNeeded("Loading a font").Error(), "Loading a font requires an active ge211 session")
	assert.Contains(t, (&LatePaintError{Who: "Text"}).Error(), "Text: Cannot paint")
}

func TestAs(t *testing.T) {
	var err error = AudioLoad("boom.wav", errors.New("bad header"))

	var mixerErr *MixerError
	assert.True(t, errors.As(err, &mixerErr))
	assert.Equal(t, "boom.wav", mixerErr.Filename)
	assert.Equal(t, ErrAudioLoad, mixerErr.Kind)
}
