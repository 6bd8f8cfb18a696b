package engine

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ge211/event"
	"github.com/lixenwraith/ge211/render"
)

const (
	screenServiceName = "screen"
	inputServiceName  = "input"
)

// screenService owns the terminal for one session
type screenService struct {
	screen tcell.Screen
	inited bool
}

func newScreenService(screen tcell.Screen) *screenService {
	return &screenService{screen: screen}
}

func (s *screenService) Name() string           { return screenServiceName }
func (s *screenService) Dependencies() []string { return nil }

// Init opens the terminal, creating one when none was supplied
func (s *screenService) Init(...any) error {
	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}
		s.screen = screen
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	s.inited = true
	s.screen.EnableMouse()
	s.screen.EnableFocus()
	s.screen.HideCursor()
	s.screen.Clear()
	return nil
}

func (s *screenService) Start() error { return nil }

func (s *screenService) Stop() error {
	if s.inited {
		s.inited = false
		s.screen.Fini()
	}
	return nil
}

// inputService pumps terminal events into the engine's event queue
type inputService struct {
	screens *screenService
	queue   *event.Queue
	tr      *event.Translator

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newInputService(screens *screenService, queue *event.Queue) *inputService {
	return &inputService{
		screens: screens,
		queue:   queue,
		tr:      event.NewTranslator(render.CellHeight),
	}
}

func (s *inputService) Name() string           { return inputServiceName }
func (s *inputService) Dependencies() []string { return []string{screenServiceName} }
func (s *inputService) Init(...any) error      { return nil }

// Start launches the polling goroutine
func (s *inputService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	Go(s.pollLoop)
	return nil
}

func (s *inputService) pollLoop() {
	defer close(s.doneCh)
	screen := s.screens.screen
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-s.stopCh:
			return
		default:
		}
		s.queue.PushAll(s.tr.Translate(ev))
	}
}

// Stop wakes the poller with an interrupt and waits for it to exit
func (s *inputService) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.screens.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-s.doneCh
	return nil
}
