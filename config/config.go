// Package config loads engine settings from defaults, an optional config
// file, GE211_ environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"

	"github.com/lixenwraith/ge211/color"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. GE211_WINDOW_TITLE
	EnvPrefix      = "GE211"
	configFileName = "ge211"
)

// Config keys
const (
	KeyWindowWidth      = "window.width"
	KeyWindowHeight     = "window.height"
	KeyWindowTitle      = "window.title"
	KeyWindowBackground = "window.background"
	KeySoftwareFPS      = "frame.software_fps"
	KeyAudioEnabled     = "audio.enabled"
	KeyAudioSampleRate  = "audio.sample_rate"
	KeyAudioBufferMS    = "audio.buffer_ms"
	KeyAudioChannels    = "audio.channels"
	KeyAudioVolume      = "audio.volume"
	KeyAudioBackend     = "audio.backend"
	KeyResourcePaths    = "resources.paths"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
	KeyRandomSeed       = "random.seed"
)

// Config holds every engine setting
type Config struct {
	Window    WindowConfig
	Frame     FrameConfig
	Audio     AudioConfig
	Resources ResourceConfig
	Log       LogConfig
	Random    RandomConfig
}

// WindowConfig sizes and labels the window
// Width and Height are in pixels; zero means fill the terminal
type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Background color.Color
}

// FrameConfig controls frame pacing
type FrameConfig struct {
	// SoftwareFPS is the target frame rate when pacing in software
	SoftwareFPS float64
}

// AudioConfig holds mixer settings
type AudioConfig struct {
	Enabled    bool
	SampleRate int
	BufferMS   int
	Channels   int
	Volume     float64
	// Backend is one of auto, speaker, pipe or none
	Backend    string
}

// ResourceConfig lists extra resource search prefixes, tried first
type ResourceConfig struct {
	Paths []string
}

// LogConfig selects log level and destination
type LogConfig struct {
	Level string
	File  string
}

// RandomConfig seeds random sources; 0 seeds from the clock
type RandomConfig struct {
	Seed uint64
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:      0,
			Height:     0,
			Title:      "ge211 window",
			Background: color.Black,
		},
		Frame: FrameConfig{SoftwareFPS: 60},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			BufferMS:   100,
			Channels:   8,
			Volume:     1,
			Backend:    "auto",
		},
		Log: LogConfig{Level: "warn"},
	}
}

// NewViper returns a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	d := Default()
	v := viper.New()

	v.SetDefault(KeyWindowWidth, d.Window.Width)
	v.SetDefault(KeyWindowHeight, d.Window.Height)
	v.SetDefault(KeyWindowTitle, d.Window.Title)
	v.SetDefault(KeyWindowBackground, "#000000")
	v.SetDefault(KeySoftwareFPS, d.Frame.SoftwareFPS)
	v.SetDefault(KeyAudioEnabled, d.Audio.Enabled)
	v.SetDefault(KeyAudioSampleRate, d.Audio.SampleRate)
	v.SetDefault(KeyAudioBufferMS, d.Audio.BufferMS)
	v.SetDefault(KeyAudioChannels, d.Audio.Channels)
	v.SetDefault(KeyAudioVolume, d.Audio.Volume)
	v.SetDefault(KeyAudioBackend, d.Audio.Backend)
	v.SetDefault(KeyResourcePaths, []string{})
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyRandomSeed, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings into a Config
// file names an explicit config file; when empty, ge211.{toml,yaml,json}
// is searched in the working directory and $HOME/.config/ge211, and a
// missing file is not an error
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ge211"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates the current viper values
func FromViper(v *viper.Viper) (Config, error) {
	bg, err := ParseColor(v.GetString(KeyWindowBackground))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyWindowBackground, err)
	}

	cfg := Config{
		Window: WindowConfig{
			Width:      v.GetInt(KeyWindowWidth),
			Height:     v.GetInt(KeyWindowHeight),
			Title:      v.GetString(KeyWindowTitle),
			Background: bg,
		},
		Frame: FrameConfig{SoftwareFPS: v.GetFloat64(KeySoftwareFPS)},
		Audio: AudioConfig{
			Enabled:    v.GetBool(KeyAudioEnabled),
			SampleRate: v.GetInt(KeyAudioSampleRate),
			BufferMS:   v.GetInt(KeyAudioBufferMS),
			Channels:   v.GetInt(KeyAudioChannels),
			Volume:     v.GetFloat64(KeyAudioVolume),
			Backend:    v.GetString(KeyAudioBackend),
		},
		Resources: ResourceConfig{Paths: v.GetStringSlice(KeyResourcePaths)},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		Random: RandomConfig{Seed: v.GetUint64(KeyRandomSeed)},
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges
func (c Config) Validate() error {
	var problems []error
	if c.Window.Width < 0 || c.Window.Height < 0 {
		problems = append(problems, fmt.Errorf("window dimensions must not be negative: %dx%d",
			c.Window.Width, c.Window.Height))
	}
	if c.Frame.SoftwareFPS <= 0 {
		problems = append(problems, fmt.Errorf("%s must be positive: %v", KeySoftwareFPS, c.Frame.SoftwareFPS))
	}
	if c.Audio.SampleRate <= 0 {
		problems = append(problems, fmt.Errorf("%s must be positive: %d", KeyAudioSampleRate, c.Audio.SampleRate))
	}
	if c.Audio.BufferMS <= 0 {
		problems = append(problems, fmt.Errorf("%s must be positive: %d", KeyAudioBufferMS, c.Audio.BufferMS))
	}
	if c.Audio.Channels <= 0 {
		problems = append(problems, fmt.Errorf("%s must be positive: %d", KeyAudioChannels, c.Audio.Channels))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		problems = append(problems, fmt.Errorf("%s must be in [0, 1]: %v", KeyAudioVolume, c.Audio.Volume))
	}
	switch c.Audio.Backend {
	case "auto", "speaker", "pipe", "none":
	default:
		problems = append(problems, fmt.Errorf("%s must be auto, speaker, pipe or none: %q", KeyAudioBackend, c.Audio.Backend))
	}
	return errors.Join(problems...)
}

// ParseColor accepts #rrggbb, #rrggbbaa or r,g,b[,a] with 0-255 components
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		alpha := uint8(255)
		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return color.Color{}, fmt.Errorf("invalid alpha in %q", s)
			}
			alpha = uint8(a)
			s = s[:7]
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return color.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.Color{R: r, G: g, B: b, A: alpha}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.Color{}, fmt.Errorf("invalid color %q", s)
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.Color{}, fmt.Errorf("invalid color component %q", p)
		}
		ch[i] = uint8(n)
	}
	return color.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
