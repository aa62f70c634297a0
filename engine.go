package adventure

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Ender is implemented by states that can signal the program should end.
type Ender interface {
	ShouldEnd(e *Engine, now time.Time) bool
}

// Engine is the frame driver. It owns the world, the script host and the
// state machine, and sequences one frame per Frame call. It is not safe for
// concurrent use.
type Engine struct {
	cfg      Config
	assets   fs.FS
	renderer Renderer
	input    Input
	clock    Clock
	log      *zap.Logger

	world    *World
	scripts  *ScriptHost
	textures *TextureLoader

	current GameState
	next    GameState

	running bool
	err     error
	last    time.Time
	dt      time.Duration
	frame   uint64
}

// NewEngine wires an engine over its collaborators. Assets are read from
// the assets filesystem; sink and log may be nil.
func NewEngine(cfg Config, assets fs.FS, r Renderer, in Input, clock Clock, sink EventSink, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	e := &Engine{
		cfg:      cfg,
		assets:   assets,
		renderer: r,
		input:    in,
		clock:    clock,
		log:      log,
		textures: NewTextureLoader(assets, r),
	}
	e.world = NewWorld(&e.cfg, clock, sink, log)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}
	env := ScriptEnv{Clock: clock, Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	e.scripts = NewScriptHost(DefaultScriptCatalog(), env, log)
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// World returns the game world.
func (e *Engine) World() *World { return e.world }

// Scripts returns the script host.
func (e *Engine) Scripts() *ScriptHost { return e.scripts }

// Renderer returns the renderer collaborator.
func (e *Engine) Renderer() Renderer { return e.renderer }

// Clock returns the engine clock.
func (e *Engine) Clock() Clock { return e.clock }

// State returns the active state, or nil before the first frame.
func (e *Engine) State() GameState { return e.current }

// PendingState returns the staged state, or nil when none is staged.
func (e *Engine) PendingState() GameState { return e.next }

// IsRunning reports whether the frame loop should continue.
func (e *Engine) IsRunning() bool { return e.running }

// Err returns the error that stopped the engine, if any.
func (e *Engine) Err() error { return e.err }

// FrameCount returns how many frames have run.
func (e *Engine) FrameCount() uint64 { return e.frame }

// DeltaTime returns the elapsed time measured by the most recent frame.
func (e *Engine) DeltaTime() time.Duration { return e.dt }

// Initialize sets up the world and stages the Playing state. It must be
// called once before the first Frame; a setup error is fatal.
func (e *Engine) Initialize() error {
	if err := e.SetupWorld(); err != nil {
		return err
	}
	e.running = true
	e.last = e.clock.Now()
	e.ChangeState(NewPlayingState())
	return nil
}

// SetupWorld loads terrain and sprite sheets, resets every entity, puts the
// player at its start, sets the camera bounds and reloads the script units.
// On error the current world is left untouched.
func (e *Engine) SetupWorld() error {
	a := e.cfg.Assets
	terrain, err := LoadTerrain(context.Background(), e.assets, a.Map, e.textures)
	if err != nil {
		return err
	}
	player, err := LoadSpriteSheet(e.assets, a.PlayerSheet, e.textures)
	if err != nil {
		return fmt.Errorf("adventure: player sheet: %w", err)
	}
	bomb, err := LoadSpriteSheet(e.assets, a.BombSheet, e.textures)
	if err != nil {
		return fmt.Errorf("adventure: bomb sheet: %w", err)
	}
	if _, ok := bomb.Clip(a.BombClip); !ok {
		return fmt.Errorf("adventure: bomb sheet %s has no clip %q", a.BombSheet, a.BombClip)
	}

	pickup, pickupTint := e.loadPickupSheet()

	e.renderer.SetWorldBounds(terrain.PixelBounds())
	e.world.Reset(terrain, player, bomb, pickup, pickupTint)
	units := e.scripts.LoadAll(e.assets, a.ScriptsDir)

	e.log.Info("world ready",
		zap.String("session", e.world.Session()),
		zap.String("map", a.Map),
		zap.Int("width", terrain.Width),
		zap.Int("height", terrain.Height),
		zap.Int("layers", len(terrain.Layers)),
		zap.Int("tiles", len(terrain.Tiles)),
		zap.Uint64("checksum", terrain.Checksum()),
		zap.Int("scripts", units))
	return nil
}

// loadPickupSheet loads the pickup image, falling back to a tinted white
// pixel when it is missing.
func (e *Engine) loadPickupSheet() (*SpriteSheet, Color) {
	name := e.cfg.Assets.PickupImage
	if name != "" && e.textures.Exists(name) {
		tex, err := e.textures.Load(name)
		if err == nil {
			return SingleFrameSheet(tex, pickupClip), ColorWhite
		}
		e.log.Warn("pickup image unusable", zap.String("image", name), zap.Error(err))
	} else {
		e.log.Warn("pickup image not found, using plain marker", zap.String("image", name))
	}
	return SingleFrameSheet(TextureInfo{ID: TextureWhite, Width: 1, Height: 1}, pickupClip), Color{1, 0.8, 0.1, 1}
}

// ChangeState stages s. It takes effect at the start of the next frame; the
// current frame finishes with the old state. Staging again before then
// replaces the staged state.
func (e *Engine) ChangeState(s GameState) {
	e.next = s
}

// Restart re-runs world setup and stages a fresh Playing state. If setup
// fails the engine stops and Err reports why.
func (e *Engine) Restart() {
	if err := e.SetupWorld(); err != nil {
		e.log.Error("restart failed", zap.Error(err))
		e.err = err
		e.running = false
		return
	}
	e.ChangeState(NewPlayingState())
}

// Quit stops the frame loop at the next iteration boundary.
func (e *Engine) Quit() {
	if e.running {
		e.log.Info("quit requested")
	}
	e.running = false
}

// ExecuteScripts runs every script unit once against the world.
func (e *Engine) ExecuteScripts() {
	e.scripts.ExecuteAll(e.world)
}

// Frame runs one iteration: measure time, drain input, apply a staged
// transition, then input, update and render on the current state, then the
// should-end check.
func (e *Engine) Frame() {
	if !e.running {
		return
	}
	e.frame++

	now := e.clock.Now()
	dt := now.Sub(e.last)
	if dt < 0 {
		dt = 0
	}
	e.last = now
	e.dt = dt

	if e.input.Poll() {
		e.Quit()
		return
	}
	for _, c := range e.input.Clicks() {
		e.handleClick(c)
	}

	if e.next != nil {
		e.applyTransition()
	}

	var stats frameStats
	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}

	if e.current != nil {
		e.current.HandleInput(e, e.input, dt)
		if e.cfg.Debug {
			stats.inputTime = time.Since(t0)
			t0 = time.Now()
		}
		e.current.Update(e, dt)
		if e.cfg.Debug {
			stats.updateTime = time.Since(t0)
			t0 = time.Now()
		}
	}

	e.renderer.Clear(ColorBlack)
	if e.current != nil {
		e.current.Render(e, e.renderer)
	}
	e.renderer.Present()

	if e.cfg.Debug {
		stats.renderTime = time.Since(t0)
		stats.entities = e.world.Registry().Len()
		if e.current != nil {
			stats.state = e.current.Name()
		}
		e.debugLog(stats)
		e.debugCheckEntityCount(stats.entities)
	}

	if ender, ok := e.current.(Ender); ok && e.cfg.Gameplay.ExitAfterGameOver && ender.ShouldEnd(e, e.clock.Now()) {
		e.log.Info("game over cooldown elapsed, ending")
		e.Quit()
	}
}

// applyTransition swaps in the staged state: old OnExit, swap, new
// Initialize, new OnEnter.
func (e *Engine) applyTransition() {
	next := e.next
	e.next = nil
	from := ""
	if e.current != nil {
		from = e.current.Name()
		e.current.OnExit(e)
	}
	e.current = next
	e.current.Initialize(e)
	e.current.OnEnter(e)
	e.log.Info("state changed", zap.String("from", from), zap.String("to", next.Name()))
}

// handleClick drops a hazard at the clicked world position while playing.
func (e *Engine) handleClick(screen Point) {
	if _, ok := e.current.(*PlayingState); !ok {
		return
	}
	if p := e.world.Player(); p == nil || !p.Alive() {
		return
	}
	w := e.renderer.ScreenToWorld(screen.X, screen.Y)
	e.world.SpawnEffect(w.X, w.Y)
}
