package adventure

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Game adapts an Engine to ebiten.Game. Update runs one engine frame, which
// records draw commands; Draw replays the last presented frame, then the HUD
// and the optional overlay.
type Game struct {
	engine   *Engine
	renderer *CommandRenderer
	cfg      Config
	hud      *HUD
	overlay  func(screen *ebiten.Image)
	log      *zap.Logger

	runner   *TestRunner
	scripted *ScriptedInput

	screenshotDir   string
	screenshotQueue []screenshotRequest
	screenshotKey   ebiten.Key
}

// NewGame wraps e. r must be the renderer the engine draws with.
func NewGame(e *Engine, r *CommandRenderer, cfg Config, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		engine:        e,
		renderer:      r,
		cfg:           cfg,
		hud:           NewHUD(cfg.ShowFPS),
		log:           log,
		screenshotDir: cfg.ScreenshotDir,
		screenshotKey: ebiten.KeyF12,
	}
}

// Engine returns the wrapped engine.
func (g *Game) Engine() *Engine { return g.engine }

// HUD returns the text overlay.
func (g *Game) HUD() *HUD { return g.hud }

// SetOverlay installs a callback drawn after everything else each frame.
func (g *Game) SetOverlay(fn func(screen *ebiten.Image)) { g.overlay = fn }

// SetTestRunner attaches a scripted play-through. in must be the engine's
// input.
func (g *Game) SetTestRunner(r *TestRunner, in *ScriptedInput) {
	g.runner = r
	g.scripted = in
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.runner != nil {
		state := ""
		if s := g.engine.State(); s != nil {
			state = s.Name()
		}
		g.runner.Step(g.scripted, state, g.Screenshot)
	}
	if inpututil.IsKeyJustPressed(g.screenshotKey) {
		g.Screenshot("manual")
	}

	g.engine.Frame()
	g.hud.Update(g.engine, g.engine.DeltaTime())

	if !g.engine.IsRunning() {
		if err := g.engine.Err(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Submit(screen)
	g.hud.Draw(screen)
	if g.overlay != nil {
		g.overlay(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game with a fixed logical screen.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and runs g until the engine stops. It returns nil on
// a normal quit and the engine error if a restart failed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowClosingHandled(true)
	start := time.Now()
	err := ebiten.RunGame(g)
	g.log.Info("game stopped",
		zap.Duration("uptime", time.Since(start)),
		zap.Uint64("frames", g.engine.FrameCount()),
		zap.Error(err))
	return err
}
