// Package errs holds the error taxonomy shared by every ge211 package.
//
// Errors fall into two families. Client logic errors are mistakes in the
// calling game (bad arguments, calls made in the wrong state). Environment
// errors come from the host: missing files, undecodable assets, an audio
// device that cannot be opened, or an apparent bug in the engine itself.
//
// Each concrete error matches its ancestors through errors.Is, so callers can
// branch on a category without caring about the exact type:
//
//	if errors.Is(err, errs.ErrHost) { ... }
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels
var (
	ErrClientLogic  = errors.New("client logic error")
	ErrEnvironment  = errors.New("environment error")
	ErrHost         = errors.New("host error")
	ErrMixer        = errors.New("mixer error")
	ErrRandomSource = errors.New("random source error")
)

// Kind sentinels for random source errors
var (
	ErrRandomBounds      = errors.New("random source bounds error")
	ErrRandomEmptyStub   = errors.New("random source empty stub error")
	ErrRandomUnsupported = errors.New("random source unsupported operation")
)

// Kind sentinels for mixer errors
var (
	ErrAudioLoad       = errors.New("audio load error")
	ErrOutOfChannels   = errors.New("out of channels")
	ErrMixerNotEnabled = errors.New("mixer not enabled")
)

// ClientLogicError reports a logic error made by the calling game
type ClientLogicError struct {
	Message string
}

// ClientLogic creates a ClientLogicError with a formatted message
func ClientLogic(format string, args ...any) *ClientLogicError {
	return &ClientLogicError{Message: fmt.Sprintf(format, args...)}
}

func (e *ClientLogicError) Error() string { return e.Message }

func (e *ClientLogicError) Is(target error) bool { return target == ErrClientLogic }

// SessionNeededError is returned when an action requires an active session
type SessionNeededError struct {
	Action string
}

// SessionNeeded creates a SessionNeededError for the attempted action
func SessionNeeded(action string) *SessionNeededError {
	return &SessionNeededError{Action: action}
}

func (e *SessionNeededError) Error() string {
	var b strings.Builder
	b.WriteString("\n\nERROR\n=====\n\n")
	b.WriteString(e.Action)
	b.WriteString(" requires an active ge211 session. Sessions are started\n")
	b.WriteString("by engine.Run, so a session is active from the moment the\n")
	b.WriteString("engine starts until the game's OnQuit handler returns.\n")
	return b.String()
}

func (e *SessionNeededError) Is(target error) bool { return target == ErrClientLogic }

// LatePaintError is returned when painting to a sprite surface that has already been rendered
type LatePaintError struct {
	Who string
}

func (e *LatePaintError) Error() string {
	return fmt.Sprintf("\n\nERROR\n=====\n\n%s: Cannot paint to a sprite surface\nthat has already been rendered.\n", e.Who)
}

func (e *LatePaintError) Is(target error) bool { return target == ErrClientLogic }

// RandomSourceError reports misuse of a random source
type RandomSourceError struct {
	Kind    error
	Message string
}

func (e *RandomSourceError) Error() string { return e.Message }

func (e *RandomSourceError) Is(target error) bool {
	return target == ErrRandomSource || target == ErrClientLogic || target == e.Kind
}

// EnvironmentError reports a failure in the engine or its environment
type EnvironmentError struct {
	Message string
}

// Environment creates an EnvironmentError with a formatted message
func Environment(format string, args ...any) *EnvironmentError {
	return &EnvironmentError{Message: fmt.Sprintf(format, args...)}
}

func (e *EnvironmentError) Error() string { return e.Message }

func (e *EnvironmentError) Is(target error) bool { return target == ErrEnvironment }

// LogicError indicates an engine invariant was broken
type LogicError struct {
	Message string
}

// Logic creates a LogicError
func Logic(format string, args ...any) *LogicError {
	return &LogicError{Message: fmt.Sprintf(format, args...)}
}

func (e *LogicError) Error() string { return "Apparent ge211 bug! " + e.Message }

func (e *LogicError) Is(target error) bool { return target == ErrEnvironment }

// HostError passes along a failure reported by the host environment
type HostError struct {
	Message string
	Reason  error
}

// Host wraps a host failure with context
func Host(message string, reason error) *HostError {
	return &HostError{Message: message, Reason: reason}
}

func (e *HostError) Error() string {
	return hostMessage(e.Message, e.Reason)
}

func (e *HostError) Unwrap() error { return e.Reason }

func (e *HostError) Is(target error) bool { return isHost(target) }

// FileOpenError reports a file that could not be opened on any search path
type FileOpenError struct {
	Filename string
	Reason   error
}

func (e *FileOpenError) Error() string {
	return hostMessage("Could not open file: "+e.Filename, e.Reason)
}

func (e *FileOpenError) Unwrap() error { return e.Reason }

func (e *FileOpenError) Is(target error) bool { return isHost(target) }

// FontLoadError reports a font file that opened but could not be parsed
type FontLoadError struct {
	Filename string
	Reason   error
}

func (e *FontLoadError) Error() string {
	return hostMessage("Could not load font: "+e.Filename, e.Reason)
}

func (e *FontLoadError) Unwrap() error { return e.Reason }

func (e *FontLoadError) Is(target error) bool { return isHost(target) }

// ImageLoadError reports an image file that opened but could not be decoded
type ImageLoadError struct {
	Filename string
	Reason   error
}

func (e *ImageLoadError) Error() string {
	return hostMessage("Could not load image: "+e.Filename, e.Reason)
}

func (e *ImageLoadError) Unwrap() error { return e.Reason }

func (e *ImageLoadError) Is(target error) bool { return isHost(target) }

// MixerError reports a failure in the audio mixer
type MixerError struct {
	Kind     error
	Filename string
	Reason   error
}

// AudioLoad creates a MixerError for an undecodable audio file
func AudioLoad(filename string, reason error) *MixerError {
	return &MixerError{Kind: ErrAudioLoad, Filename: filename, Reason: reason}
}

// OutOfChannels creates a MixerError for a full effect channel table
func OutOfChannels() *MixerError {
	return &MixerError{Kind: ErrOutOfChannels}
}

// MixerNotEnabled creates a MixerError for an unavailable audio device
func MixerNotEnabled() *MixerError {
	return &MixerError{Kind: ErrMixerNotEnabled}
}

func (e *MixerError) Error() string {
	var problem string
	switch e.Kind {
	case ErrAudioLoad:
		problem = "Could not load audio: " + e.Filename
	case ErrOutOfChannels:
		problem = "Could not play effect: out of channels"
	case ErrMixerNotEnabled:
		problem = "Mixer is not enabled"
	default:
		problem = "unknown problem"
	}
	return hostMessage("[Mixer] "+problem, e.Reason)
}

func (e *MixerError) Unwrap() error { return e.Reason }

func (e *MixerError) Is(target error) bool {
	return target == ErrMixer || target == e.Kind || isHost(target)
}

func isHost(target error) bool {
	return target == ErrHost || target == ErrEnvironment
}

func hostMessage(message string, reason error) string {
	switch {
	case message == "" && reason == nil:
		return "Host error"
	case message == "":
		return "Host error: " + reason.Error()
	case reason == nil:
		return message
	default:
		return message + "\n  (reason from host: " + reason.Error() + ")"
	}
}
