package event

import (
	"fmt"

	"github.com/lixenwraith/ge211/geometry"
)

// MouseButton identifies a mouse button
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	}
	return "<unknown>"
}

// Kind is the type of an engine event
type Kind int

const (
	KindKeyDown Kind = iota
	KindKeyUp
	KindMouseDown
	KindMouseUp
	KindMouseMove
	KindFocus
	KindResize
	KindQuit
)

var kindNames = [...]string{
	KindKeyDown:   "KeyDown",
	KindKeyUp:     "KeyUp",
	KindMouseDown: "MouseDown",
	KindMouseUp:   "MouseUp",
	KindMouseMove: "MouseMove",
	KindFocus:     "Focus",
	KindResize:    "Resize",
	KindQuit:      "Quit",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is a decoded input event
// Only the fields relevant to Kind are set
type Event struct {
	Kind     Kind
	Key      Key
	Button   MouseButton
	Position geometry.Position
	Focused  bool
	Size     geometry.Dimensions
}
