package window

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/geometry"
)

func newScreen(t *testing.T, cols, rows int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func TestWindowDimensions(t *testing.T) {
	w := New(newScreen(t, 80, 24), "demo", nil)

	assert.Equal(t, geometry.Dimensions{Width: 80, Height: 48}, w.Dimensions())
	assert.Equal(t, w.Dimensions(), w.MaxWindowDimensions())
	assert.Equal(t, geometry.Position{}, w.Position())

	assert.NoError(t, w.SetDimensions(geometry.Dimensions{Width: 80, Height: 48}))
	err := w.SetDimensions(geometry.Dimensions{Width: 1024, Height: 768})
	assert.ErrorIs(t, err, errs.ErrEnvironment)
	assert.Contains(t, err.Error(), "out of range")
}

func TestWindowTitleAndFlags(t *testing.T) {
	w := New(newScreen(t, 10, 5), "first", nil)
	assert.Equal(t, "first", w.Title())
	w.SetTitle("second")
	assert.Equal(t, "second", w.Title())

	assert.True(t, w.Resizable())
	w.SetResizable(false)
	assert.False(t, w.Resizable())

	assert.True(t, w.Fullscreen())
	assert.NoError(t, w.SetFullscreen(true))
	assert.ErrorIs(t, w.SetFullscreen(false), errs.ErrEnvironment)

	assert.NoError(t, w.SetPosition(geometry.Position{}))
	assert.ErrorIs(t, w.SetPosition(geometry.Position{X: 1}), errs.ErrEnvironment)
}
