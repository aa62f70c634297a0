package adventure

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorldHandle is the narrow surface script units mutate the world through.
type WorldHandle interface {
	// PlayerPosition returns the player's top-left position.
	PlayerPosition() Point
	// SpawnEffect places a hazard with its top-left corner at (x, y).
	SpawnEffect(x, y int) EntityID
	// SpawnPickup places an invulnerability pickup at (x, y) unless one is
	// already present, in which case it returns false.
	SpawnPickup(x, y int) (EntityID, bool)
	// PickupPresent reports whether a spawned pickup is still in the world.
	PickupPresent() bool
}

var _ WorldHandle = (*World)(nil)

// World is the mutable game world: the registry, the player, the terrain and
// the assets entities are built from. It is owned by the Engine and handed to
// states and scripts by reference.
type World struct {
	registry *EntityRegistry
	player   *Player
	terrain  *Terrain

	bombSheet   *SpriteSheet
	bombClip    string
	pickupSheet *SpriteSheet
	pickupTint  Color

	// pickupID is the live spawn-controlled pickup, 0 when none is present.
	pickupID EntityID

	session string
	cfg     *Config
	clock   Clock
	sink    EventSink
	log     *zap.Logger
}

// NewWorld creates an empty world. Setup populates terrain, player and sheets.
func NewWorld(cfg *Config, clock Clock, sink EventSink, log *zap.Logger) *World {
	if sink == nil {
		sink = nopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		registry: NewEntityRegistry(),
		cfg:      cfg,
		clock:    clock,
		sink:     sink,
		log:      log,
		bombClip: cfg.Assets.BombClip,
	}
}

// Registry returns the entity registry.
func (w *World) Registry() *EntityRegistry { return w.registry }

// Player returns the player, or nil before setup.
func (w *World) Player() *Player { return w.player }

// Terrain returns the loaded terrain, or nil before setup.
func (w *World) Terrain() *Terrain { return w.terrain }

// Session returns the id stamped by the most recent setup.
func (w *World) Session() string { return w.session }

// Reset installs freshly loaded assets, drops every entity and puts the
// player at the configured start. A new session id is issued.
func (w *World) Reset(terrain *Terrain, player, bomb, pickup *SpriteSheet, pickupTint Color) {
	w.terrain = terrain
	w.bombSheet = bomb
	w.pickupSheet = pickup
	w.pickupTint = pickupTint
	w.ClearEntities()

	g := w.cfg.Gameplay
	start := Point{g.StartX, g.StartY}
	w.player = NewPlayer(player.NewAnimation(""), start, g.PlayerSpeed/1000)
	w.player.id = w.registry.Reserve()
	w.player.Reset(start)
	if terrain != nil {
		b := terrain.PixelBounds()
		w.player.SetWorldSize(b.Width, b.Height)
	}

	w.session = uuid.NewString()
	w.emit(EventWorldReset, w.player.ID(), start, w.clock.Now())
}

// ClearEntities removes every registry entity and forgets the live pickup.
// The player is untouched.
func (w *World) ClearEntities() {
	w.registry.Clear()
	w.pickupID = 0
}

// PlayerPosition returns the player's position, or the origin before setup.
func (w *World) PlayerPosition() Point {
	if w.player == nil {
		return Point{}
	}
	return w.player.Position()
}

// SpawnEffect adds a hazard at (x, y) that expires after the configured
// lifetime.
func (w *World) SpawnEffect(x, y int) EntityID {
	now := w.clock.Now()
	anim := w.bombSheet.NewAnimation(w.bombClip)
	fx := NewTemporaryEffect(anim, Point{x, y}, now, w.cfg.Gameplay.EffectLifetime)
	id := w.registry.Insert(fx)
	w.emit(EventEffectSpawned, id, fx.Position(), now)
	return id
}

// SpawnPickup adds the invulnerability pickup at (x, y) if none is present.
func (w *World) SpawnPickup(x, y int) (EntityID, bool) {
	if w.PickupPresent() {
		return 0, false
	}
	anim := w.pickupSheet.NewAnimation(pickupClip)
	pk := NewPickup(anim, PickupInvulnerability, Point{x, y}, w.pickupTint)
	id := w.registry.Insert(pk)
	w.pickupID = id
	w.emit(EventPickupSpawned, id, pk.Position(), w.clock.Now())
	w.log.Debug("pickup spawned", zap.Uint32("entity", uint32(id)), zap.Int("x", x), zap.Int("y", y))
	return id, true
}

// PickupPresent reports whether the spawn-controlled pickup is live.
func (w *World) PickupPresent() bool {
	if w.pickupID == 0 {
		return false
	}
	if _, ok := w.registry.Get(w.pickupID); !ok {
		w.pickupID = 0
		return false
	}
	return true
}

// Animate advances every entity animation, the player's included, by dt.
func (w *World) Animate(dt time.Duration) {
	for r := range w.registry.Renderables() {
		r.Animation().Update(dt)
	}
	if w.player != nil {
		w.player.Animation().Update(dt)
	}
}

func (w *World) emit(kind EventKind, id EntityID, pos Point, at time.Time) {
	w.sink.Emit(GameEvent{Kind: kind, Session: w.session, Entity: id, Position: pos, At: at})
}

const pickupClip = "Idle"
