package adventure

import (
	"time"

	"go.uber.org/zap"
)

// highlightTint is multiplied by the pulse value for hazards touching an
// invulnerable player.
var highlightTint = Color{1, 0.85, 0.2, 1}

// invulnerableTint is the player's tint while immune.
var invulnerableTint = Color{1, 1, 0.6, 1}

// PlayingState drives the player, the script units and the interaction rules,
// and renders terrain, entities and the player.
type PlayingState struct {
	lastBomb time.Time
	pulse    *Pulse
	last     Resolution
}

// NewPlayingState creates a fresh Playing state.
func NewPlayingState() *PlayingState {
	return &PlayingState{}
}

// Name returns "playing".
func (*PlayingState) Name() string { return "playing" }

// Initialize drops every entity and puts the player back to idle, facing down.
func (s *PlayingState) Initialize(e *Engine) {
	e.world.ClearEntities()
	if p := e.world.Player(); p != nil {
		p.SetState(PlayerIdle, DirectionDown)
	}
	s.lastBomb = time.Time{}
	s.pulse = NewPulse(0.55, 1, 600*time.Millisecond)
}

// OnEnter logs the transition.
func (*PlayingState) OnEnter(e *Engine) {
	e.log.Info("entered playing state", zap.String("session", e.world.Session()))
}

// OnExit logs the transition.
func (*PlayingState) OnExit(e *Engine) {
	e.log.Info("exited playing state", zap.String("session", e.world.Session()))
}

// HandleInput moves the player, triggers the attack when at most one
// direction is held, and drops a bomb at the player's feet.
func (s *PlayingState) HandleInput(e *Engine, in Input, dt time.Duration) {
	p := e.world.Player()
	if p == nil || !p.Alive() {
		return
	}

	up := pressedAxis(in, ActionUp)
	down := pressedAxis(in, ActionDown)
	left := pressedAxis(in, ActionLeft)
	right := pressedAxis(in, ActionRight)
	attacking := in.Pressed(ActionAttack) && up+down+left+right <= 1

	p.UpdatePosition(up, down, left, right, PlayerSize, PlayerSize, float64(dt)/float64(time.Millisecond))
	if attacking {
		p.Attack()
	}

	if in.Pressed(ActionBomb) {
		now := e.clock.Now()
		if s.lastBomb.IsZero() || now.Sub(s.lastBomb) >= e.cfg.Gameplay.BombCooldown {
			s.lastBomb = now
			pos := p.Position()
			e.world.SpawnEffect(pos.X, pos.Y)
		}
	}
}

func pressedAxis(in Input, a Action) float64 {
	if in.Pressed(a) {
		return 1
	}
	return 0
}

// Update advances animations, runs the scripts, resolves interactions and
// stages GameOver once the player is dead.
func (s *PlayingState) Update(e *Engine, dt time.Duration) {
	p := e.world.Player()
	if p == nil {
		return
	}
	e.world.Animate(dt)
	s.pulse.Update(dt)

	e.ExecuteScripts()
	s.last = e.world.Resolve(e.clock.Now())

	if !p.Alive() {
		e.ChangeState(NewGameOverState())
	}
}

// LastResolution returns what the most recent update's interaction pass did.
func (s *PlayingState) LastResolution() Resolution { return s.last }

// Render follows the player with the camera and draws terrain, entities and
// the player last.
func (s *PlayingState) Render(e *Engine, r Renderer) {
	p := e.world.Player()
	if p == nil {
		return
	}
	c := p.Center()
	r.CameraLookAt(c.X, c.Y)

	if t := e.world.Terrain(); t != nil {
		t.Render(r, r.VisibleBounds())
	}

	now := e.clock.Now()
	invulnerable := p.Invulnerable(now)
	pb := p.Bounds()
	for obj := range e.world.Registry().Renderables() {
		tint := ColorWhite
		if invulnerable {
			if fx, ok := obj.(*TemporaryEffect); ok && Overlaps(pb, fx.Bounds()) {
				v := s.pulse.Value
				tint = Color{highlightTint.R * v, highlightTint.G * v, highlightTint.B * v, 1}
			}
		}
		obj.Render(r, tint)
	}

	tint := ColorWhite
	if invulnerable {
		tint = invulnerableTint
	}
	p.Render(r, tint)
}
