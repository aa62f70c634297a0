package adventure

import (
	"time"

	"go.uber.org/zap"
)

// Default interaction tuning.
const (
	DefaultPickupRadius = 16 // centre distance for collecting a pickup
	DefaultLethalRadius = 8  // centre distance at which an expiring hazard kills
	DefaultAttackReach  = 32 // how far an attack extends past the player's hit-box
)

// PickupInReach reports whether the centres of the two hit-boxes are within
// radius of each other.
func PickupInReach(player, pickup Rect, radius int) bool {
	return withinRadius(player.Center(), pickup.Center(), radius)
}

// LethalHit reports whether an effect centred at effect is close enough to
// the player's centre to kill.
func LethalHit(player Rect, effect Point, radius int) bool {
	return withinRadius(player.Center(), effect, radius)
}

func withinRadius(a, b Point, radius int) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy <= radius*radius
}

// AttackReaches reports whether target lies inside the attack zone of a player
// with hit-box player facing facing. The zone extends reach pixels past the
// hit-box edge in the facing direction only and is as wide as the hit-box.
// A target level with or behind the player's centre is never reached.
func AttackReaches(player Rect, facing Direction, target Point, reach int) bool {
	c := player.Center()
	var forward, lateral, depth, halfWidth int
	switch facing {
	case DirectionUp:
		forward, lateral = c.Y-target.Y, target.X-c.X
		depth, halfWidth = player.Height/2, player.Width/2
	case DirectionDown:
		forward, lateral = target.Y-c.Y, target.X-c.X
		depth, halfWidth = player.Height/2, player.Width/2
	case DirectionLeft:
		forward, lateral = c.X-target.X, target.Y-c.Y
		depth, halfWidth = player.Width/2, player.Height/2
	case DirectionRight:
		forward, lateral = target.X-c.X, target.Y-c.Y
		depth, halfWidth = player.Width/2, player.Height/2
	default:
		return false
	}
	if lateral < 0 {
		lateral = -lateral
	}
	return forward > 0 && forward <= depth+reach && lateral <= halfWidth
}

// Overlaps reports whether two hit-boxes touch. Used only for the visual
// highlight of hazards near an invulnerable player.
func Overlaps(a, b Rect) bool {
	return a.Intersects(b)
}

// Resolution records what one Resolve pass changed.
type Resolution struct {
	AcquiredPickup EntityID   // pickup collected this pass, or 0
	Defused        []EntityID // hazards removed by the attack
	Expired        []EntityID // hazards removed because their lifetime ended
	Killed         bool       // the player died this pass
}

// Resolve runs the interaction rules once, in order: pickup acquisition,
// attack against hazards, then hazard expiry with the lethality check.
// Each rule collects matching ids before removing any of them.
func (w *World) Resolve(now time.Time) Resolution {
	var res Resolution
	p := w.player
	if p == nil {
		return res
	}
	t := w.cfg.Gameplay

	// 1. Pickup acquisition.
	if w.pickupID != 0 && p.Alive() && !p.Invulnerable(now) {
		if e, ok := w.registry.Get(w.pickupID); ok && PickupInReach(p.Bounds(), e.Bounds(), t.PickupRadius) {
			p.GrantInvulnerability(now, t.Invulnerability)
			w.registry.Remove(e.ID())
			w.pickupID = 0
			res.AcquiredPickup = e.ID()
			w.emit(EventPickupAcquired, e.ID(), e.Position(), now)
			w.log.Debug("pickup acquired",
				zap.Uint32("entity", uint32(e.ID())),
				zap.Time("invulnerable_until", p.InvulnerableUntil()))
		}
	}

	// 2. Attack against hazards in the facing direction.
	if p.State() == PlayerAttack {
		bounds, facing := p.Bounds(), p.Direction()
		for _, e := range w.registry.Prune(func(e Entity) bool {
			fx, ok := e.(*TemporaryEffect)
			return ok && AttackReaches(bounds, facing, fx.Center(), t.AttackReach)
		}) {
			res.Defused = append(res.Defused, e.ID())
			w.emit(EventEffectDefused, e.ID(), e.Position(), now)
		}
	}

	// 3. Expiry and lethality.
	for _, e := range w.registry.Prune(func(e Entity) bool {
		fx, ok := e.(*TemporaryEffect)
		return ok && fx.Expired(now)
	}) {
		fx := e.(*TemporaryEffect)
		res.Expired = append(res.Expired, fx.ID())
		w.emit(EventEffectExpired, fx.ID(), fx.Position(), now)
		if p.Alive() && !p.Invulnerable(now) && LethalHit(p.Bounds(), fx.Center(), t.LethalRadius) {
			p.GameOver(now)
			res.Killed = true
			w.emit(EventPlayerDied, p.ID(), p.Position(), now)
			w.log.Info("player died",
				zap.String("session", w.session),
				zap.Uint32("hazard", uint32(fx.ID())))
		}
	}
	return res
}
