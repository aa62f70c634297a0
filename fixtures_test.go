package adventure

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/zap"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// pngBytes encodes a w×h image filled with c.
func pngBytes(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

var playerClipOrder = []string{
	"IdleDown", "IdleUp", "IdleLeft", "IdleRight",
	"MoveDown", "MoveUp", "MoveLeft", "MoveRight",
	"AttackDown", "AttackUp", "AttackLeft", "AttackRight",
	"GameOver",
}

// playerSheetJSON describes a 4-column sheet with one clip per row.
func playerSheetJSON(file string) string {
	var clips []string
	for row, name := range playerClipOrder {
		loop := name != "GameOver"
		clips = append(clips, fmt.Sprintf(
			`"%s": {"StartFrame": {"Row": %d, "Column": 0}, "EndFrame": {"Row": %d, "Column": 3}, "DurationMs": 400, "Loop": %t}`,
			name, row, row, loop))
	}
	return fmt.Sprintf(`{"FileName": %q, "FrameWidth": 48, "FrameHeight": 48, "Animations": {%s}}`,
		file, strings.Join(clips, ", "))
}

const bombSheetJSON = `{
	"FileName": "bomb.png",
	"FrameWidth": 48,
	"FrameHeight": 48,
	"Animations": {
		"Explode": {"StartFrame": {"Row": 0, "Column": 0}, "EndFrame": {"Row": 0, "Column": 5}, "DurationMs": 2100, "Loop": false}
	}
}`

// terrainJSON is a cols×rows map of 32px tiles using an external tileset.
func terrainJSON(cols, rows int) string {
	cells := make([]string, cols*rows)
	for i := range cells {
		cells[i] = fmt.Sprint(1 + i%2)
	}
	return fmt.Sprintf(`{
	"width": %d, "height": %d, "tilewidth": 32, "tileheight": 32,
	"layers": [
		{"name": "ground", "type": "tilelayer", "width": %d, "height": %d, "data": [%s]},
		{"name": "spawns", "type": "objectgroup"}
	],
	"tilesets": [{"firstgid": 1, "source": "terrain.tsj"}]
}`, cols, rows, cols, rows, strings.Join(cells, ","))
}

const tilesetJSON = `{
	"name": "terrain",
	"tiles": [
		{"id": 0, "image": "tiles/grass.png", "imagewidth": 32, "imageheight": 32},
		{"id": 1, "image": "tiles/dirt.png", "imagewidth": 32, "imageheight": 32}
	]
}`

// testAssets returns a complete asset tree: a 20×15 map (640×480 pixels),
// player and bomb sheets, the pickup and game-over images, and no scripts.
func testAssets(t testing.TB) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"terrain.tmj":        {Data: []byte(terrainJSON(20, 15))},
		"terrain.tsj":        {Data: []byte(tilesetJSON)},
		"tiles/grass.png":    {Data: pngBytes(t, 32, 32, color.NRGBA{40, 160, 60, 255})},
		"tiles/dirt.png":     {Data: pngBytes(t, 32, 32, color.NRGBA{120, 90, 40, 255})},
		"Player.json":        {Data: []byte(playerSheetJSON("player.png"))},
		"player.png":         {Data: pngBytes(t, 192, 48*len(playerClipOrder), color.NRGBA{200, 200, 255, 255})},
		"BombExploding.json": {Data: []byte(bombSheetJSON)},
		"bomb.png":           {Data: pngBytes(t, 288, 48, color.NRGBA{30, 30, 30, 255})},
		"god_mode.png":       {Data: pngBytes(t, 16, 16, color.NRGBA{255, 215, 0, 255})},
		"game_over.png":      {Data: pngBytes(t, 640, 480, color.NRGBA{80, 0, 0, 255})},
	}
}

// testConfig returns the defaults with a fixed seed.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	return cfg
}

// testPlayerSheet builds the player clips in memory, one frame each.
func testPlayerSheet() *SpriteSheet {
	s := NewSpriteSheet(TextureInfo{ID: 1, Width: 192, Height: 624}, 48, 48)
	for row, name := range playerClipOrder {
		s.AddClip(&Clip{
			Name:     name,
			Frames:   []Rect{{X: 0, Y: row * 48, Width: 48, Height: 48}},
			Duration: 400 * time.Millisecond,
			Loop:     name != "GameOver",
		})
	}
	return s
}

func testBombSheet() *SpriteSheet {
	s := NewSpriteSheet(TextureInfo{ID: 2, Width: 288, Height: 48}, 48, 48)
	clip := &Clip{Name: "Explode", Duration: 2100 * time.Millisecond}
	for i := 0; i < 6; i++ {
		clip.Frames = append(clip.Frames, Rect{X: i * 48, Width: 48, Height: 48})
	}
	s.AddClip(clip)
	return s
}

func testPickupSheet() *SpriteSheet {
	return SingleFrameSheet(TextureInfo{ID: 3, Width: 16, Height: 16}, pickupClip)
}

func testEffect(x, y int, created time.Time) *TemporaryEffect {
	return NewTemporaryEffect(testBombSheet().NewAnimation("Explode"), Point{x, y}, created, 2100*time.Millisecond)
}

func testPickup(x, y int) *Pickup {
	return NewPickup(testPickupSheet().NewAnimation(pickupClip), PickupInvulnerability, Point{x, y}, ColorWhite)
}

// newTestWorld returns a world reset with in-memory sheets and no terrain.
// The player starts at (100, 100).
func newTestWorld(t testing.TB) (*World, *ManualClock, *EventRecorder) {
	t.Helper()
	cfg := testConfig()
	clock := NewManualClock(testEpoch)
	rec := &EventRecorder{}
	w := NewWorld(&cfg, clock, rec, zap.NewNop())
	w.Reset(nil, testPlayerSheet(), testBombSheet(), testPickupSheet(), ColorWhite)
	return w, clock, rec
}

// newTestEngine returns an initialized engine over testAssets, driven by a
// manual clock and scripted input.
func newTestEngine(t testing.TB) (*Engine, *ManualClock, *ScriptedInput, *CommandRenderer) {
	t.Helper()
	return newTestEngineWith(t, testConfig(), testAssets(t))
}

func newTestEngineWith(t testing.TB, cfg Config, assets fstest.MapFS) (*Engine, *ManualClock, *ScriptedInput, *CommandRenderer) {
	t.Helper()
	clock := NewManualClock(testEpoch)
	in := NewScriptedInput()
	r := NewCommandRenderer(cfg, zap.NewNop())
	e := NewEngine(cfg, assets, r, in, clock, nil, zap.NewNop())
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return e, clock, in, r
}

// step advances the clock by dt and runs one frame.
func step(e *Engine, clock *ManualClock, dt time.Duration) {
	clock.Advance(dt)
	e.Frame()
}
