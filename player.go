package adventure

import (
	"math"
	"time"
)

// DefaultPlayerSpeed is the player's movement speed in pixels per millisecond.
const DefaultPlayerSpeed = 0.192

// Player is the controllable entity. It lives in the World rather than the
// registry, so clearing the registry never removes it.
type Player struct {
	entityBase

	dir   Direction
	state PlayerState

	speed          float64 // px per ms
	carryX, carryY float64 // sub-pixel movement not yet applied
	worldW, worldH int

	invulnerableUntil time.Time
	deathTime         time.Time
	deaths            int
}

// NewPlayer creates an idle player facing down at pos.
func NewPlayer(anim *SpriteAnimation, pos Point, speed float64) *Player {
	if speed <= 0 {
		speed = DefaultPlayerSpeed
	}
	p := &Player{
		entityBase: entityBase{pos: pos, size: PlayerSize, anim: anim},
		speed:      speed,
	}
	p.syncAnimation()
	return p
}

// Kind returns KindPlayer.
func (*Player) Kind() EntityKind { return KindPlayer }

// Direction returns the facing direction.
func (p *Player) Direction() Direction { return p.dir }

// State returns the behavioral state.
func (p *Player) State() PlayerState { return p.state }

// Alive reports whether the player has not reached GameOver.
func (p *Player) Alive() bool { return p.state != PlayerGameOver }

// Center returns the centre of the player's hit-box.
func (p *Player) Center() Point { return p.Bounds().Center() }

// SetWorldSize sets the world dimensions the player is clamped to. Zero
// disables clamping on that axis.
func (p *Player) SetWorldSize(w, h int) {
	p.worldW, p.worldH = w, h
}

// Reset puts the player back at pos, idle and facing down, with no status.
// Used by world setup; it is the only way out of GameOver.
func (p *Player) Reset(pos Point) {
	p.pos = pos
	p.dir = DirectionDown
	p.state = PlayerIdle
	p.carryX, p.carryY = 0, 0
	p.invulnerableUntil = time.Time{}
	p.deathTime = time.Time{}
	p.deaths = 0
	p.syncAnimation()
}

// SetState forces the behavioral state and facing. GameOver is terminal and
// is only entered through GameOver.
func (p *Player) SetState(s PlayerState, d Direction) {
	if p.state == PlayerGameOver || s == PlayerGameOver {
		return
	}
	p.state, p.dir = s, d
	p.syncAnimation()
}

// UpdatePosition integrates one frame of directional input. Each intensity is
// in [0, 1]. The net vector is normalised and scaled by speed × elapsedMs;
// the hit-box of boundW×boundH stays inside the world. Moving sets Move and
// faces the dominant axis, vertical winning ties; no movement sets Idle.
func (p *Player) UpdatePosition(up, down, left, right float64, boundW, boundH int, elapsedMs float64) {
	if p.state == PlayerGameOver {
		return
	}
	dx := clamp01(right) - clamp01(left)
	dy := clamp01(down) - clamp01(up)
	if dx == 0 && dy == 0 {
		p.carryX, p.carryY = 0, 0
		p.state = PlayerIdle
		p.syncAnimation()
		return
	}

	if math.Abs(dy) >= math.Abs(dx) {
		if dy < 0 {
			p.dir = DirectionUp
		} else {
			p.dir = DirectionDown
		}
	} else {
		if dx < 0 {
			p.dir = DirectionLeft
		} else {
			p.dir = DirectionRight
		}
	}
	p.state = PlayerMove

	length := math.Hypot(dx, dy)
	dist := p.speed * math.Max(elapsedMs, 0)
	p.carryX += dx / length * dist
	p.carryY += dy / length * dist
	stepX := math.Trunc(p.carryX)
	stepY := math.Trunc(p.carryY)
	p.carryX -= stepX
	p.carryY -= stepY

	p.pos.X += int(stepX)
	p.pos.Y += int(stepY)
	if p.worldW > 0 {
		p.pos.X = clampInt(p.pos.X, 0, p.worldW-boundW)
	}
	if p.worldH > 0 {
		p.pos.Y = clampInt(p.pos.Y, 0, p.worldH-boundH)
	}
	p.syncAnimation()
}

// Attack switches to the Attack state for this frame. The next movement call
// replaces it.
func (p *Player) Attack() {
	if p.state == PlayerGameOver {
		return
	}
	p.state = PlayerAttack
	p.syncAnimation()
}

// GameOver moves the player into the terminal state. Only the first call
// records a death time; later calls do nothing.
func (p *Player) GameOver(now time.Time) {
	if p.state == PlayerGameOver {
		return
	}
	p.state = PlayerGameOver
	p.deathTime = now
	p.deaths++
	p.syncAnimation()
}

// DeathTime returns when the player died, and whether it has.
func (p *Player) DeathTime() (time.Time, bool) {
	return p.deathTime, p.state == PlayerGameOver
}

// Deaths returns how many death timestamps have been recorded since the last
// reset. It is 0 or 1.
func (p *Player) Deaths() int { return p.deaths }

// GrantInvulnerability makes the player immune to hazards until now+d.
func (p *Player) GrantInvulnerability(now time.Time, d time.Duration) {
	p.invulnerableUntil = now.Add(d)
}

// Invulnerable reports whether the timed immunity is active at now.
func (p *Player) Invulnerable(now time.Time) bool {
	return now.Before(p.invulnerableUntil)
}

// InvulnerableUntil returns when the current immunity ends.
func (p *Player) InvulnerableUntil() time.Time { return p.invulnerableUntil }

// ClipName returns the animation clip matching the current state and facing.
func (p *Player) ClipName() string {
	if p.state == PlayerGameOver {
		return "GameOver"
	}
	return p.state.String() + p.dir.String()
}

// syncAnimation plays the clip for the current state. The clip only restarts
// when its name changes.
func (p *Player) syncAnimation() {
	if p.anim != nil {
		p.anim.Play(p.ClipName())
	}
}

// Render draws the player's current frame.
func (p *Player) Render(r Renderer, tint Color) {
	p.anim.Draw(r, p.pos, tint)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
