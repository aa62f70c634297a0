package adventure

import "time"

// EntityID uniquely identifies an entity within the registry that issued it.
// Zero means "no entity".
type EntityID uint32

// EntityKind tags the entity variants.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota // the controllable player
	KindEffect                   // a temporary effect such as a bomb
	KindPickup                   // a power-up granting a timed status
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEffect:
		return "effect"
	case KindPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Renderable is the projection shared by every visual entity: where it is,
// its logical hit-box, and the animation it draws with.
type Renderable interface {
	// Position returns the top-left corner in world pixels.
	Position() Point
	// Bounds returns the fixed logical hit-box.
	Bounds() Rect
	// Animation returns the entity's animation. Never nil.
	Animation() *SpriteAnimation
	// Render draws the entity with the given tint.
	Render(r Renderer, tint Color)
}

// Entity is the closed set {*Player, *TemporaryEffect, *Pickup}. Dispatch on
// Kind or with a type switch; no other implementations exist.
type Entity interface {
	Renderable
	ID() EntityID
	Kind() EntityKind
	base() *entityBase
}

// entityBase holds the fields common to all variants.
type entityBase struct {
	id   EntityID
	pos  Point
	size int
	anim *SpriteAnimation
}

func (b *entityBase) base() *entityBase { return b }

// ID returns the registry-issued id, or 0 if the entity was never registered.
func (b *entityBase) ID() EntityID { return b.id }

// Position returns the top-left corner in world pixels.
func (b *entityBase) Position() Point { return b.pos }

// Bounds returns the logical hit-box.
func (b *entityBase) Bounds() Rect {
	return Rect{X: b.pos.X, Y: b.pos.Y, Width: b.size, Height: b.size}
}

// Animation returns the entity's animation.
func (b *entityBase) Animation() *SpriteAnimation { return b.anim }

// TemporaryEffect is a world entity with a fixed lifetime measured from its
// creation time. Bombs are temporary effects.
type TemporaryEffect struct {
	entityBase
	created  time.Time
	lifetime time.Duration
}

// NewTemporaryEffect creates an effect at pos that expires lifetime after
// created.
func NewTemporaryEffect(anim *SpriteAnimation, pos Point, created time.Time, lifetime time.Duration) *TemporaryEffect {
	return &TemporaryEffect{
		entityBase: entityBase{pos: pos, size: EffectSize, anim: anim},
		created:    created,
		lifetime:   lifetime,
	}
}

// Kind returns KindEffect.
func (*TemporaryEffect) Kind() EntityKind { return KindEffect }

// Created returns the creation time.
func (e *TemporaryEffect) Created() time.Time { return e.created }

// Lifetime returns the total lifetime.
func (e *TemporaryEffect) Lifetime() time.Duration { return e.lifetime }

// Expired reports whether the lifetime has fully elapsed at now.
func (e *TemporaryEffect) Expired(now time.Time) bool {
	return now.Sub(e.created) >= e.lifetime
}

// Center returns the centre of the effect's hit-box.
func (e *TemporaryEffect) Center() Point { return e.Bounds().Center() }

// Render draws the current frame at the effect's position.
func (e *TemporaryEffect) Render(r Renderer, tint Color) {
	e.anim.Draw(r, e.pos, tint)
}

// PickupKind identifies what a pickup grants.
type PickupKind uint8

const (
	// PickupInvulnerability grants a timed immunity to hazards.
	PickupInvulnerability PickupKind = iota
)

func (k PickupKind) String() string {
	if k == PickupInvulnerability {
		return "invulnerability"
	}
	return "unknown"
}

// Pickup is a power-up the player collects by walking over it.
type Pickup struct {
	entityBase
	kind PickupKind
	tint Color
}

// NewPickup creates a pickup of the given kind at pos. Pickups are drawn
// stretched to their hit-box; tint multiplies the image color.
func NewPickup(anim *SpriteAnimation, kind PickupKind, pos Point, tint Color) *Pickup {
	return &Pickup{
		entityBase: entityBase{pos: pos, size: PickupSize, anim: anim},
		kind:       kind,
		tint:       tint,
	}
}

// Kind returns KindPickup.
func (*Pickup) Kind() EntityKind { return KindPickup }

// PickupKind returns what the pickup grants.
func (p *Pickup) PickupKind() PickupKind { return p.kind }

// Render draws the pickup image scaled to the hit-box.
func (p *Pickup) Render(r Renderer, tint Color) {
	c := Color{p.tint.R * tint.R, p.tint.G * tint.G, p.tint.B * tint.B, p.tint.A * tint.A}
	r.DrawTexture(p.anim.Texture(), p.anim.SourceRect(), p.Bounds(), c)
}
