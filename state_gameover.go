package adventure

import (
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Button placement relative to the game-over image's top-left corner.
var (
	restartButton = Rect{X: 220, Y: 170, Width: 200, Height: 60}
	quitButton    = Rect{X: 220, Y: 260, Width: 200, Height: 60}
)

// Nominal frame the buttons are laid out against when no image is available.
const (
	gameOverFrameWidth  = 640
	gameOverFrameHeight = 480
)

var (
	restartButtonTint = Color{0.2, 0.6, 0.25, 1}
	quitButtonTint    = Color{0.65, 0.2, 0.2, 1}
)

// GameOverState shows a static screen with a restart and a quit target.
type GameOverState struct {
	screenW, screenH int
	image            *TextureInfo
	origin           Point
	alpha            float64
	fade             *TweenGroup
}

// NewGameOverState creates a fresh GameOver state.
func NewGameOverState() *GameOverState {
	return &GameOverState{}
}

// Name returns "game_over".
func (*GameOverState) Name() string { return "game_over" }

// Initialize centres the camera on the screen and loads the optional
// background image. A missing image is not an error.
func (s *GameOverState) Initialize(e *Engine) {
	s.screenW, s.screenH = e.renderer.ViewSize()
	e.renderer.CenterCameraOnScreen()

	s.image = nil
	name := e.cfg.Assets.GameOverImage
	if name != "" && e.textures.Exists(name) {
		info, err := e.textures.Load(name)
		if err != nil {
			e.log.Warn("game over image unusable", zap.String("image", name), zap.Error(err))
		} else {
			s.image = &info
		}
	} else {
		e.log.Info("game over image not found, drawing plain buttons", zap.String("image", name))
	}

	w, h := gameOverFrameWidth, gameOverFrameHeight
	if s.image != nil {
		w, h = s.image.Width, s.image.Height
	}
	s.origin = Point{s.screenW/2 - w/2, s.screenH/2 - h/2}

	s.alpha = 0
	s.fade = TweenAlpha(&s.alpha, 1, 400*time.Millisecond, ease.OutQuad)
}

// OnEnter re-centres the camera.
func (s *GameOverState) OnEnter(e *Engine) {
	if s.screenW > 0 && s.screenH > 0 {
		e.renderer.CenterCameraOnScreen()
	}
	e.log.Info("entered game over state", zap.String("session", e.world.Session()))
}

// OnExit logs the transition.
func (*GameOverState) OnExit(e *Engine) {
	e.log.Info("exited game over state", zap.String("session", e.world.Session()))
}

// RestartRect returns the restart target in screen coordinates.
func (s *GameOverState) RestartRect() Rect {
	return Rect{X: s.origin.X + restartButton.X, Y: s.origin.Y + restartButton.Y, Width: restartButton.Width, Height: restartButton.Height}
}

// QuitRect returns the quit target in screen coordinates.
func (s *GameOverState) QuitRect() Rect {
	return Rect{X: s.origin.X + quitButton.X, Y: s.origin.Y + quitButton.Y, Width: quitButton.Width, Height: quitButton.Height}
}

// HandleInput restarts or quits on a left click inside the matching target.
// Clicks anywhere else do nothing.
func (s *GameOverState) HandleInput(e *Engine, in Input, _ time.Duration) {
	if !in.MouseJustPressed(MouseButtonLeft) {
		return
	}
	m := in.MousePosition()
	switch {
	case s.RestartRect().Contains(m.X, m.Y):
		e.Restart()
	case s.QuitRect().Contains(m.X, m.Y):
		e.Quit()
	}
}

// Update ticks the script units and the fade-in; nothing else changes here.
func (s *GameOverState) Update(e *Engine, dt time.Duration) {
	e.ExecuteScripts()
	s.fade.Update(dt)
}

// ShouldEnd reports whether the configured cooldown has elapsed since the
// player died. It is informational; the engine decides what to do with it.
func (s *GameOverState) ShouldEnd(e *Engine, now time.Time) bool {
	p := e.world.Player()
	if p == nil {
		return false
	}
	died, dead := p.DeathTime()
	return dead && now.Sub(died) >= e.cfg.Gameplay.GameOverCooldown
}

// Render draws the image, or tinted plain buttons without one, fading in.
func (s *GameOverState) Render(_ *Engine, r Renderer) {
	fade := Color{1, 1, 1, s.alpha}
	if s.image != nil {
		r.DrawTexture(s.image.ID,
			Rect{Width: s.image.Width, Height: s.image.Height},
			Rect{X: s.origin.X, Y: s.origin.Y, Width: s.image.Width, Height: s.image.Height},
			fade)
		return
	}
	pixel := Rect{Width: 1, Height: 1}
	r.DrawTexture(TextureWhite, pixel, s.RestartRect(), Color{restartButtonTint.R, restartButtonTint.G, restartButtonTint.B, s.alpha})
	r.DrawTexture(TextureWhite, pixel, s.QuitRect(), Color{quitButtonTint.R, quitButtonTint.G, quitButtonTint.B, s.alpha})
}
