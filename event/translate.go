package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ge211/geometry"
)

// Translator converts terminal events into engine events
//
// Terminals report key presses but never key releases, so every press
// yields a KeyDown immediately followed by a synthesized KeyUp. Mouse
// releases are inferred from changes in the held-button mask.
type Translator struct {
	cellHeight int
	buttons    tcell.ButtonMask
	lastPos    geometry.Position
	havePos    bool
}

// NewTranslator creates a translator for cells that are cellHeight pixels tall
func NewTranslator(cellHeight int) *Translator {
	if cellHeight < 1 {
		cellHeight = 1
	}
	return &Translator{cellHeight: cellHeight}
}

// Translate decodes one terminal event into zero or more engine events
func (t *Translator) Translate(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(ev)
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return []Event{{Kind: KindResize, Size: geometry.Dimensions{Width: w, Height: h * t.cellHeight}}}
	case *tcell.EventFocus:
		return []Event{{Kind: KindFocus, Focused: ev.Focused}}
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitRequest); ok {
			return []Event{{Kind: KindQuit}}
		}
	}
	return nil
}

// QuitEvent returns a terminal event that translates to KindQuit
// Posting it to a screen wakes a blocked event loop and ends the game
func QuitEvent() tcell.Event {
	return tcell.NewEventInterrupt(quitRequest{})
}

type quitRequest struct{}

func (t *Translator) translateKey(ev *tcell.EventKey) []Event {
	if ev.Key() == tcell.KeyCtrlC {
		return []Event{{Kind: KindQuit}}
	}
	k := MapKey(ev)
	return []Event{
		{Kind: KindKeyDown, Key: k},
		{Kind: KindKeyUp, Key: k},
	}
}

// MapKey maps a terminal key event to an engine Key
func MapKey(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyRune:
		if k, err := KeyCode(ev.Rune()); err == nil {
			return k
		}
		return KeyOther()
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyUp:
		return KeyUp()
	case tcell.KeyDown:
		return KeyDown()
	case tcell.KeyLeft:
		return KeyLeft()
	case tcell.KeyRight:
		return KeyRight()
	}
	// Remaining ASCII-range keys are control characters
	if k := ev.Key(); k >= 0 && k < 128 {
		return Key{KeyTypeCode, rune(k)}
	}
	return KeyOther()
}

var buttonMasks = [...]struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.Button1, MouseLeft},
	{tcell.Button3, MouseMiddle},
	{tcell.Button2, MouseRight},
}

func (t *Translator) translateMouse(ev *tcell.EventMouse) []Event {
	x, y := ev.Position()
	pos := geometry.Position{X: x, Y: y * t.cellHeight}
	held := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	var out []Event
	if t.havePos && pos != t.lastPos {
		out = append(out, Event{Kind: KindMouseMove, Position: pos})
	}
	t.lastPos = pos
	t.havePos = true

	for _, bm := range buttonMasks {
		was := t.buttons&bm.mask != 0
		is := held&bm.mask != 0
		switch {
		case is && !was:
			out = append(out, Event{Kind: KindMouseDown, Button: bm.button, Position: pos})
		case was && !is:
			out = append(out, Event{Kind: KindMouseUp, Button: bm.button, Position: pos})
		}
	}
	t.buttons = held
	return out
}
