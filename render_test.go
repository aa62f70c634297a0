package adventure

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRenderer_LoadTexture(t *testing.T) {
	r := NewCommandRenderer(testConfig(), nil)
	a := r.LoadTexture(image.NewRGBA(image.Rect(0, 0, 32, 16)))
	b := r.LoadTexture(image.NewRGBA(image.Rect(0, 0, 8, 8)))

	assert.Equal(t, TextureInfo{ID: 1, Width: 32, Height: 16}, a, "slot 0 is the white pixel")
	assert.Equal(t, TextureInfo{ID: 2, Width: 8, Height: 8}, b)
}

func TestCommandRenderer_ViewSize(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 640, 480
	r := NewCommandRenderer(cfg, nil)
	w, h := r.ViewSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestCommandRenderer_FrameLifecycle(t *testing.T) {
	r := NewCommandRenderer(testConfig(), nil)
	r.CenterCameraOnScreen()

	r.Clear(ColorBlack)
	r.DrawTexture(TextureWhite, Rect{Width: 1, Height: 1}, Rect{X: 1, Y: 2, Width: 3, Height: 4}, ColorWhite)
	assert.Empty(t, r.Commands(), "nothing is visible before Present")

	r.Present()
	require.Len(t, r.Commands(), 1)

	// A new frame does not disturb the presented one until it is presented.
	r.Clear(Color{0.1, 0.2, 0.3, 1})
	r.DrawTexture(TextureWhite, Rect{Width: 1, Height: 1}, Rect{Width: 5, Height: 5}, ColorWhite)
	r.DrawTexture(TextureWhite, Rect{Width: 1, Height: 1}, Rect{Width: 6, Height: 6}, ColorWhite)
	require.Len(t, r.Commands(), 1)
	assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 4}, r.Commands()[0].Dst)

	r.Present()
	assert.Len(t, r.Commands(), 2)

	r.Clear(ColorBlack)
	r.Present()
	assert.Empty(t, r.Commands())
}

func TestCommandRenderer_SkipsEmptyDestination(t *testing.T) {
	r := NewCommandRenderer(testConfig(), nil)
	r.Clear(ColorBlack)
	r.DrawTexture(TextureWhite, Rect{Width: 1, Height: 1}, Rect{Width: 0, Height: 10}, ColorWhite)
	r.DrawTexture(TextureWhite, Rect{Width: 1, Height: 1}, Rect{Width: 10, Height: -1}, ColorWhite)
	r.Present()
	assert.Empty(t, r.Commands())
}

func TestCommandRenderer_CameraTransform(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 800, 600
	r := NewCommandRenderer(cfg, nil)
	r.CameraLookAt(500, 300)

	r.Clear(ColorBlack)
	r.DrawTexture(TextureWhite, Rect{Width: 1, Height: 1}, Rect{X: 500, Y: 300, Width: 10, Height: 10}, ColorWhite)
	r.Present()

	require.Len(t, r.Commands(), 1)
	assert.Equal(t, Rect{X: 400, Y: 300, Width: 10, Height: 10}, r.Commands()[0].Dst)
	assert.Equal(t, Point{500, 300}, r.ScreenToWorld(400, 300))
	assert.Equal(t, Point{100, 0}, r.ScreenToWorld(0, 0))
}

func TestCommandRenderer_WorldBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 800, 600
	r := NewCommandRenderer(cfg, nil)
	r.SetWorldBounds(Rect{Width: 1000, Height: 1000})

	r.CameraLookAt(0, 0)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 800, Height: 600}, r.VisibleBounds())

	r.CameraLookAt(1000, 1000)
	assert.Equal(t, Rect{X: 200, Y: 400, Width: 800, Height: 600}, r.VisibleBounds())

	r.CenterCameraOnScreen()
	assert.False(t, r.Camera().BoundsEnabled)
	assert.Equal(t, Point{37, 91}, r.ScreenToWorld(37, 91))
}

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		in   Color
		want color.RGBA
	}{
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{ColorBlack, color.RGBA{0, 0, 0, 255}},
		{Color{1, 0.5, 0, 0.5}, color.RGBA{127, 63, 0, 127}},
		{Color{2, -1, 0, 1}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := tt.in.toRGBA(); got != tt.want {
			t.Errorf("%v.toRGBA() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
