package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/ge211/config"
	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/resource"
	"github.com/lixenwraith/ge211/session"
	"github.com/lixenwraith/ge211/status"
)

// Mixer plays one music track and a fixed number of effect channels
//
// All methods except Stream are meant for the game goroutine. Stream is
// pulled by the output device and serialises with them on mu
type Mixer struct {
	mu      sync.Mutex
	format  beep.Format
	enabled bool
	root    beep.Mixer
	master  *effects.Volume
	out     Output
	buffer  time.Duration

	loc     *resource.Locator
	log     *slog.Logger
	metrics *status.Registry

	music       *MusicTrack
	musicState  State
	musicVolume float64
	source      beep.StreamSeekCloser
	sourceRate  beep.SampleRate
	player      *musicPlayer

	channels  []*EffectHandle
	available int
}

// musicPlayer is the chain built each time the music resumes
// The decoder outlives it and carries the play position
type musicPlayer struct {
	ctrl   *beep.Ctrl
	fader  *fader
	volume *effects.Volume
	done   bool
}

// Option configures a Mixer
type Option func(*Mixer)

// WithOutput plays through out instead of the configured backend
func WithOutput(out Output) Option {
	return func(m *Mixer) { m.out = out }
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Mixer) { m.log = log }
}

// WithMetrics publishes play counts and channel use to reg
func WithMetrics(reg *status.Registry) Option {
	return func(m *Mixer) { m.metrics = reg }
}

// NewMixer opens the audio device described by cfg
// Failing to open a device is not an error: the mixer comes back disabled
func NewMixer(cfg config.AudioConfig, loc *resource.Locator, opts ...Option) *Mixer {
	channels := cfg.Channels
	if channels <= 0 {
		channels = DefaultChannels
	}
	if loc == nil {
		loc = resource.NewLocator(nil)
	}

	m := &Mixer{
		format:      beep.Format{SampleRate: beep.SampleRate(cfg.SampleRate), NumChannels: 2, Precision: 2},
		buffer:      time.Duration(cfg.BufferMS) * time.Millisecond,
		loc:         loc,
		log:         slog.New(slog.DiscardHandler),
		musicVolume: 1,
		channels:    make([]*EffectHandle, channels),
		available:   channels,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.master = &effects.Volume{Streamer: &m.root, Base: 2}
	setVolume(m.master, cfg.Volume)

	if !cfg.Enabled {
		m.log.Info("audio disabled by configuration")
		m.out = nil
		m.publish()
		return m
	}

	candidates := []Output{m.out}
	if m.out == nil {
		candidates = outputsFor(cfg.Backend, m.log)
	}
	for _, out := range candidates {
		if err := out.Start(m, m.format, m.buffer); err != nil {
			m.log.Warn("could not open audio device", "backend", out.Name(), "error", err)
			continue
		}
		m.out = out
		m.enabled = true
		m.log.Info("audio device opened", "backend", out.Name(),
			"sample_rate", int(m.format.SampleRate), "channels", channels)
		break
	}
	if !m.enabled {
		m.out = nil
	}
	m.publish()
	return m
}

// IsEnabled reports whether an audio device is open
func (m *Mixer) IsEnabled() bool {
	return m.enabled
}

// Format is the output sample format
func (m *Mixer) Format() beep.Format {
	return m.format
}

// Close stops playback and releases the device
func (m *Mixer) Close() error {
	var err error
	if m.out != nil {
		err = m.out.Close()
		m.out = nil
	}
	m.mu.Lock()
	m.root.Clear()
	if m.source != nil {
		m.source.Close()
		m.source = nil
	}
	m.mu.Unlock()
	m.enabled = false
	return err
}

// Stream implements beep.Streamer and never drains
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	n, _ := m.master.Stream(samples)
	m.mu.Unlock()
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (m *Mixer) Err() error { return nil }

// LoadMusic reads and validates a music file (wav, ogg or mp3)
func (m *Mixer) LoadMusic(name string) (*MusicTrack, error) {
	data, err := m.readClip(name)
	if err != nil {
		return nil, err
	}
	s, _, err := decode(name, data)
	if err != nil {
		return nil, err
	}
	s.Close()
	return &MusicTrack{name: name, data: data}, nil
}

// TryLoadMusic is LoadMusic reporting failure as false
func (m *Mixer) TryLoadMusic(name string) (*MusicTrack, bool) {
	t, err := m.LoadMusic(name)
	if err != nil {
		m.log.Debug("music load failed", "name", name, "error", err)
		return nil, false
	}
	return t, true
}

// LoadEffect decodes a sound file into memory at the mixer's sample rate
func (m *Mixer) LoadEffect(name string) (*SoundEffect, error) {
	data, err := m.readClip(name)
	if err != nil {
		return nil, err
	}
	s, format, err := decode(name, data)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	buf := beep.NewBuffer(m.format)
	buf.Append(m.resample(format.SampleRate, s))
	if err := s.Err(); err != nil {
		return nil, errs.AudioLoad(name, err)
	}
	return &SoundEffect{name: name, buffer: buf}, nil
}

// TryLoadEffect is LoadEffect reporting failure as false
func (m *Mixer) TryLoadEffect(name string) (*SoundEffect, bool) {
	e, err := m.LoadEffect(name)
	if err != nil {
		m.log.Debug("effect load failed", "name", name, "error", err)
		return nil, false
	}
	return e, true
}

func (m *Mixer) readClip(name string) ([]byte, error) {
	if err := session.Check("Audio loading"); err != nil {
		return nil, err
	}
	if !m.enabled {
		return nil, errs.MixerNotEnabled()
	}
	return m.loc.ReadFile(name)
}

func (m *Mixer) resample(from beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == m.format.SampleRate {
		return s
	}
	return beep.Resample(4, from, m.format.SampleRate, s)
}

// PlayMusic attaches track and starts it from the beginning
func (m *Mixer) PlayMusic(track *MusicTrack, forever bool) error {
	if err := m.AttachMusic(track); err != nil {
		return err
	}
	return m.ResumeMusic(0, forever)
}

// AttachMusic replaces the current track; fails while playing or fading
// An empty track detaches
func (m *Mixer) AttachMusic(track *MusicTrack) error {
	switch m.musicState {
	case StatePlaying:
		return errs.ClientLogic("Mixer.AttachMusic: still playing")
	case StateFadingOut:
		return errs.ClientLogic("Mixer.AttachMusic: fading out")
	}

	m.mu.Lock()
	if m.source != nil {
		m.source.Close()
		m.source = nil
	}
	m.mu.Unlock()

	m.music = track
	m.setMusicState(StateDetached)
	if track.Empty() {
		return nil
	}

	s, format, err := track.open()
	if err != nil {
		m.music = nil
		return err
	}
	m.mu.Lock()
	m.source, m.sourceRate = s, format.SampleRate
	m.mu.Unlock()
	m.setMusicState(StatePaused)
	return nil
}

// Music returns the attached track, or nil
func (m *Mixer) Music() *MusicTrack {
	return m.music
}

// MusicState returns the music state
func (m *Mixer) MusicState() State {
	return m.musicState
}

// MusicPosition is how far into the track playback has reached
func (m *Mixer) MusicPosition() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == nil {
		return 0
	}
	return m.sourceRate.D(m.source.Position())
}

// ResumeMusic continues from the remembered position, fading in over fadeIn
// Idempotent while playing
func (m *Mixer) ResumeMusic(fadeIn time.Duration, forever bool) error {
	switch m.musicState {
	case StateDetached:
		return errs.ClientLogic("Mixer.ResumeMusic: no music attached")
	case StateFadingOut:
		return errs.ClientLogic("Mixer.ResumeMusic: fading out")
	case StatePlaying:
		return nil
	}

	m.mu.Lock()
	var s beep.Streamer = &looper{source: m.source, forever: forever}
	f := newFader(m.resample(m.sourceRate, s), m.format.SampleRate.N(fadeIn))
	p := &musicPlayer{fader: f, volume: &effects.Volume{Streamer: f, Base: 2}}
	setVolume(p.volume, m.musicVolume)
	p.ctrl = &beep.Ctrl{Streamer: beep.Seq(p.volume, beep.Callback(func() { p.done = true }))}
	m.player = p
	m.root.Add(p.ctrl)
	m.mu.Unlock()

	m.setMusicState(StatePlaying)
	return nil
}

// PauseMusic stops the music, fading out over fadeOut when positive
// Idempotent while paused
func (m *Mixer) PauseMusic(fadeOut time.Duration) error {
	switch m.musicState {
	case StateDetached:
		return errs.ClientLogic("Mixer.PauseMusic: no music attached")
	case StateFadingOut:
		return errs.ClientLogic("Mixer.PauseMusic: fading out")
	case StatePaused:
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if fadeOut <= 0 {
		m.player.ctrl.Streamer = nil
		m.player = nil
		m.setMusicState(StatePaused)
		return nil
	}
	m.player.fader.fadeOut(m.format.SampleRate.N(fadeOut))
	m.setMusicState(StateFadingOut)
	return nil
}

// RewindMusic moves a paused track back to the start
func (m *Mixer) RewindMusic() error {
	if m.musicState != StatePaused {
		return errs.ClientLogic("Mixer.RewindMusic: must be paused")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source.Seek(0)
}

// MusicVolume returns the music volume in [0, 1]
func (m *Mixer) MusicVolume() float64 {
	return m.musicVolume
}

// SetMusicVolume clamps v to [0, 1]
func (m *Mixer) SetMusicVolume(v float64) {
	m.musicVolume = clampUnit(v)
	m.mu.Lock()
	if m.player != nil {
		setVolume(m.player.volume, m.musicVolume)
	}
	m.mu.Unlock()
}

// AvailableEffectChannels returns the number of idle effect channels
func (m *Mixer) AvailableEffectChannels() int {
	return m.available
}

// PlayEffect starts effect at volume on a free channel
func (m *Mixer) PlayEffect(effect *SoundEffect, volume float64) (*EffectHandle, error) {
	if !m.enabled {
		return nil, errs.MixerNotEnabled()
	}
	if effect.Empty() {
		return nil, errs.ClientLogic("Mixer.PlayEffect: empty sound effect")
	}
	h := m.TryPlayEffect(effect, volume)
	if h == nil {
		return nil, errs.OutOfChannels()
	}
	return h, nil
}

// TryPlayEffect is PlayEffect returning an empty (nil) handle on failure
func (m *Mixer) TryPlayEffect(effect *SoundEffect, volume float64) *EffectHandle {
	if !m.enabled || effect.Empty() {
		return nil
	}

	channel := -1
	for i, h := range m.channels {
		if h == nil {
			channel = i
			break
		}
	}
	if channel < 0 {
		m.log.Debug("effect dropped: out of channels", "effect", effect.Name())
		m.count(status.EffectsDropped)
		return nil
	}

	h := &EffectHandle{
		mixer:   m,
		effect:  effect,
		channel: channel,
		state:   StatePlaying,
		volume:  clampUnit(volume),
	}
	h.gain = &effects.Volume{Streamer: effect.streamer(), Base: 2}
	setVolume(h.gain, h.volume)
	h.ctrl = &beep.Ctrl{Streamer: beep.Seq(h.gain, beep.Callback(func() { h.done = true }))}

	m.mu.Lock()
	m.root.Add(h.ctrl)
	m.mu.Unlock()

	m.channels[channel] = h
	m.available--
	m.count(status.EffectsPlayed)
	m.publish()
	return h
}

// PauseAllEffects pauses every playing effect
func (m *Mixer) PauseAllEffects() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.channels {
		if h != nil && h.state == StatePlaying {
			h.ctrl.Paused = true
			h.state = StatePaused
		}
	}
}

// ResumeAllEffects resumes every paused effect
func (m *Mixer) ResumeAllEffects() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.channels {
		if h != nil && h.state == StatePaused {
			h.ctrl.Paused = false
			h.state = StatePlaying
		}
	}
}

// PollChannels reconciles state with what finished playing
// Call once per frame. Music that ran out is paused and rewound; music that
// faded out is paused where it stopped. Finished effects free their channel
func (m *Mixer) PollChannels() {
	if !m.enabled {
		return
	}

	m.mu.Lock()
	if m.player != nil && m.player.done {
		switch m.musicState {
		case StatePlaying:
			if err := m.source.Seek(0); err != nil {
				m.log.Warn("music rewind failed", "track", m.music.Name(), "error", err)
			}
			m.setMusicState(StatePaused)
		case StateFadingOut:
			m.setMusicState(StatePaused)
		}
		m.player = nil
	}
	for i, h := range m.channels {
		if h != nil && h.done {
			m.unregister(i)
		}
	}
	m.mu.Unlock()

	m.publish()
}

// unregister frees a channel; caller holds mu
func (m *Mixer) unregister(channel int) {
	h := m.channels[channel]
	h.state = StateDetached
	h.ctrl.Streamer = nil
	m.channels[channel] = nil
	m.available++
}

func (m *Mixer) setMusicState(s State) {
	m.musicState = s
	if m.metrics != nil && m.metrics.Labels.Get(status.MusicState).Store(s.String()) {
		m.log.Debug("music state changed", "state", s.String())
	}
}

func (m *Mixer) count(key string) {
	if m.metrics != nil {
		m.metrics.Ints.Get(key).Add(1)
	}
}

func (m *Mixer) publish() {
	if m.metrics != nil {
		m.metrics.Ints.Get(status.ChannelsInUse).Store(int64(len(m.channels) - m.available))
		m.metrics.Labels.Get(status.MusicState).Store(m.musicState.String())
	}
}
