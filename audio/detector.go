package audio

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// BackendType identifies a command-line audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes how to reach a backend
// OSS has no Args: samples are written to Path directly
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)

// lookPath is replaced in tests
var lookPath = exec.LookPath

// DetectBackend finds a player that accepts raw stereo s16le at rate
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay > OSS
func DetectBackend(rate int) (*BackendConfig, error) {
	r := strconv.Itoa(rate)

	if path, err := lookPath("pacat"); err == nil {
		return &BackendConfig{
			Type: BackendPulse,
			Name: "pacat",
			Path: path,
			Args: []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"},
		}, nil
	}

	if path, err := lookPath("pw-cat"); err == nil {
		return &BackendConfig{
			Type: BackendPipeWire,
			Name: "pw-cat",
			Path: path,
			Args: []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-"},
		}, nil
	}

	if path, err := lookPath("aplay"); err == nil {
		return &BackendConfig{
			Type: BackendALSA,
			Name: "aplay",
			Path: path,
			Args: []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"},
		}, nil
	}

	if path, err := lookPath("play"); err == nil {
		return &BackendConfig{
			Type: BackendSoX,
			Name: "sox",
			Path: path,
			Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"},
		}, nil
	}

	// heavyweight fallback
	if path, err := lookPath("ffplay"); err == nil {
		return &BackendConfig{
			Type: BackendFFplay,
			Name: "ffplay",
			Path: path,
			Args: []string{
				"-nodisp", "-autoexit",
				"-f", "s16le", "-ac", "2", "-ar", r,
				"-i", "pipe:0", "-loglevel", "quiet",
			},
		}, nil
	}

	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
