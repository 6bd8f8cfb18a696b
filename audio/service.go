package audio

import (
	"github.com/lixenwraith/ge211/config"
	"github.com/lixenwraith/ge211/resource"
)

// ServiceName is the hub key of the mixer service
const ServiceName = "mixer"

// Service owns the Mixer for one engine session
// A missing audio device is not a failure: the mixer comes up disabled
type Service struct {
	cfg   config.AudioConfig
	loc   *resource.Locator
	opts  []Option
	mixer *Mixer
}

// NewService creates the service; the device opens in Start
func NewService(cfg config.AudioConfig, loc *resource.Locator, opts ...Option) *Service {
	return &Service{cfg: cfg, loc: loc, opts: opts}
}

// Name implements session.Service
func (s *Service) Name() string {
	return ServiceName
}

// Dependencies implements session.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements session.Service
// args[0]: bool - muted; a muted session never opens a device
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			s.cfg.Enabled = false
		}
	}
	return nil
}

// Start implements session.Service
func (s *Service) Start() error {
	if s.mixer == nil {
		s.mixer = NewMixer(s.cfg, s.loc, s.opts...)
	}
	return nil
}

// Stop implements session.Service
func (s *Service) Stop() error {
	if s.mixer == nil {
		return nil
	}
	err := s.mixer.Close()
	s.mixer = nil
	return err
}

// Mixer returns the running mixer, or nil before Start
func (s *Service) Mixer() *Mixer {
	return s.mixer
}
