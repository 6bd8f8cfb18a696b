// Package event defines the input events delivered to games and translates
// terminal events into them.
package event

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/ge211/errs"
)

// KeyType distinguishes character keys from special keys
type KeyType int

const (
	KeyTypeCode KeyType = iota
	KeyTypeUp
	KeyTypeDown
	KeyTypeLeft
	KeyTypeRight
	KeyTypeShift
	KeyTypeControl
	KeyTypeAlt
	KeyTypeCommand
	KeyTypeOther
)

var keyTypeNames = [...]string{
	KeyTypeCode:    "code",
	KeyTypeUp:      "up",
	KeyTypeDown:    "down",
	KeyTypeLeft:    "left",
	KeyTypeRight:   "right",
	KeyTypeShift:   "shift",
	KeyTypeControl: "control",
	KeyTypeAlt:     "alt",
	KeyTypeCommand: "command",
	KeyTypeOther:   "other",
}

func (t KeyType) String() string {
	if t >= 0 && int(t) < len(keyTypeNames) {
		return keyTypeNames[t]
	}
	return "<unknown>"
}

// Key identifies a keyboard key
// Character keys carry their Unicode code point; special keys carry only a type
// The zero value is Key::code(0), so use KeyOther for "no particular key"
type Key struct {
	typ  KeyType
	code rune
}

// Common character keys
var (
	KeyEscape    = Key{KeyTypeCode, 0x1B}
	KeyEnter     = Key{KeyTypeCode, '\r'}
	KeyTab       = Key{KeyTypeCode, '\t'}
	KeyBackspace = Key{KeyTypeCode, 0x08}
	KeyDelete    = Key{KeyTypeCode, 0x7F}
	KeySpace     = Key{KeyTypeCode, ' '}
)

// KeyCode returns the key for a Unicode code point
// Surrogates and values outside the Unicode range are rejected
func KeyCode(c rune) (Key, error) {
	if !utf8.ValidRune(c) {
		return Key{}, errs.ClientLogic("Not a valid Unicode code point: 0x%X", c)
	}
	return Key{KeyTypeCode, c}, nil
}

// MustKeyCode is KeyCode for literal code points known to be valid
func MustKeyCode(c rune) Key {
	k, err := KeyCode(c)
	if err != nil {
		panic(err)
	}
	return k
}

func KeyUp() Key      { return Key{typ: KeyTypeUp} }
func KeyDown() Key    { return Key{typ: KeyTypeDown} }
func KeyLeft() Key    { return Key{typ: KeyTypeLeft} }
func KeyRight() Key   { return Key{typ: KeyTypeRight} }
func KeyShift() Key   { return Key{typ: KeyTypeShift} }
func KeyControl() Key { return Key{typ: KeyTypeControl} }
func KeyAlt() Key     { return Key{typ: KeyTypeAlt} }
func KeyCommand() Key { return Key{typ: KeyTypeCommand} }
func KeyOther() Key   { return Key{typ: KeyTypeOther} }

// Type returns the key's type
func (k Key) Type() KeyType { return k.typ }

// Code returns the code point of a character key, or 0 for special keys
func (k Key) Code() rune { return k.code }

// IsTextual reports whether the key is a non-control character
func (k Key) IsTextual() bool {
	return k.typ == KeyTypeCode && !unicode.IsControl(k.code)
}

// AsText returns the key's character as UTF-8, or "" if it is not textual
func (k Key) AsText() string {
	if !k.IsTextual() {
		return ""
	}
	return string(k.code)
}

func (k Key) String() string {
	if k.typ != KeyTypeCode {
		return "Key::" + k.typ.String() + "()"
	}
	if k.code < 128 && k.IsTextual() {
		return fmt.Sprintf("Key::code('%c')", k.code)
	}
	return fmt.Sprintf("Key::code(%d)", k.code)
}
