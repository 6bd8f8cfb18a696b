package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ge211/color"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "ge211 window", cfg.Window.Title)
	assert.Equal(t, color.Black, cfg.Window.Background)
	assert.Equal(t, 60.0, cfg.Frame.SoftwareFPS)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 8, cfg.Audio.Channels)
	assert.Equal(t, "auto", cfg.Audio.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, uint64(0), cfg.Random.Seed)
}

func TestConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ge211.toml")
	content := `
[window]
title = "from file"
background = "#102030"

[audio]
channels = 4

[resources]
paths = ["assets/"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("GE211_AUDIO_CHANNELS", "16")
	t.Setenv("GE211_RANDOM_SEED", "99")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "from file", cfg.Window.Title)
	assert.Equal(t, color.RGB(0x10, 0x20, 0x30), cfg.Window.Background)
	assert.Equal(t, 16, cfg.Audio.Channels, "environment beats file")
	assert.Equal(t, []string{"assets/"}, cfg.Resources.Paths)
	assert.Equal(t, uint64(99), cfg.Random.Seed)
}

func TestSearchFindsFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("ge211.yaml", []byte("window:\n  title: searched\n"), 0o644))

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "searched", cfg.Window.Title)
}

func TestExplicitMissingFileFails(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Audio.Channels = 0
	cfg.Frame.SoftwareFPS = -1
	cfg.Audio.Backend = "alsa"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyAudioChannels)
	assert.Contains(t, err.Error(), KeySoftwareFPS)
	assert.Contains(t, err.Error(), KeyAudioBackend)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#ff8000", color.RGB(255, 128, 0), false},
		{"#ff800080", color.Color{R: 255, G: 128, A: 128}, false},
		{"1, 2, 3", color.RGB(1, 2, 3), false},
		{"1,2,3,4", color.Color{R: 1, G: 2, B: 3, A: 4}, false},
		{"#zzzzzz", color.Color{}, true},
		{"1,2", color.Color{}, true},
		{"1,2,300", color.Color{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
