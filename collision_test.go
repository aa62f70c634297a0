package adventure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackReaches(t *testing.T) {
	// Hit-box centred on (124, 124); depth 24 + reach 32 = 56 forward.
	player := Rect{X: 100, Y: 100, Width: PlayerSize, Height: PlayerSize}
	tests := []struct {
		name   string
		facing Direction
		target Point
		want   bool
	}{
		{"right in front", DirectionRight, Point{164, 124}, true},
		{"right at full reach", DirectionRight, Point{180, 124}, true},
		{"right just past reach", DirectionRight, Point{181, 124}, false},
		{"right but target behind", DirectionLeft, Point{164, 124}, false},
		{"left in front", DirectionLeft, Point{84, 124}, true},
		{"up in front", DirectionUp, Point{124, 94}, true},
		{"down does not reach up", DirectionDown, Point{124, 94}, false},
		{"down in front", DirectionDown, Point{124, 170}, true},
		{"level with centre", DirectionRight, Point{124, 124}, false},
		{"lateral edge", DirectionRight, Point{150, 148}, true},
		{"lateral outside", DirectionRight, Point{150, 149}, false},
		{"lateral outside above", DirectionUp, Point{99, 94}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttackReaches(player, tt.facing, tt.target, DefaultAttackReach))
		})
	}
}

func TestPickupInReach(t *testing.T) {
	player := Rect{Width: PlayerSize, Height: PlayerSize} // centre (24, 24)
	tests := []struct {
		name string
		pos  Point
		want bool
	}{
		{"concentric", Point{16, 16}, true},
		{"at radius", Point{32, 16}, true},
		{"just outside", Point{33, 16}, false},
		{"diagonal inside", Point{27, 27}, true},   // centre (35, 35): √242 ≈ 15.6
		{"diagonal outside", Point{28, 28}, false}, // centre (36, 36): √288 ≈ 17.0
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pickup := Rect{X: tt.pos.X, Y: tt.pos.Y, Width: PickupSize, Height: PickupSize}
			assert.Equal(t, tt.want, PickupInReach(player, pickup, DefaultPickupRadius))
		})
	}
}

func TestLethalHit(t *testing.T) {
	player := Rect{Width: PlayerSize, Height: PlayerSize} // centre (24, 24)
	tests := []struct {
		name   string
		effect Point
		want   bool
	}{
		{"concentric", Point{24, 24}, true},
		{"at radius", Point{32, 24}, true},
		{"just outside", Point{33, 24}, false},
		{"diagonal outside", Point{30, 30}, false}, // √72 ≈ 8.5
		{"between lethal and pickup radius", Point{36, 24}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LethalHit(player, tt.effect, DefaultLethalRadius))
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 48, Height: 48}
	assert.True(t, Overlaps(a, Rect{X: 40, Y: 40, Width: 48, Height: 48}))
	assert.True(t, Overlaps(a, Rect{X: 48, Y: 0, Width: 10, Height: 10}), "shared edge counts")
	assert.False(t, Overlaps(a, Rect{X: 49, Y: 0, Width: 10, Height: 10}))
}

func TestResolve_ExpiredHazardKills(t *testing.T) {
	w, clock, rec := newTestWorld(t)
	p := w.Player()
	// Same position and size as the player: concentric.
	id := w.SpawnEffect(100, 100)

	clock.Advance(2 * time.Second)
	res := w.Resolve(clock.Now())
	assert.Empty(t, res.Expired)
	assert.True(t, p.Alive())

	clock.Advance(100 * time.Millisecond)
	res = w.Resolve(clock.Now())
	assert.Equal(t, []EntityID{id}, res.Expired)
	assert.True(t, res.Killed)
	assert.Equal(t, PlayerGameOver, p.State())
	died, dead := p.DeathTime()
	require.True(t, dead)
	assert.Equal(t, testEpoch.Add(2100*time.Millisecond), died)
	assert.Equal(t, 0, w.Registry().Len())
	assert.Equal(t, 1, rec.Count(EventPlayerDied))
	assert.Equal(t, 1, rec.Count(EventEffectExpired))
}

func TestResolve_InvulnerablePlayerSurvives(t *testing.T) {
	w, clock, rec := newTestWorld(t)
	p := w.Player()
	p.GrantInvulnerability(clock.Now(), 5*time.Second)
	w.SpawnEffect(100, 100)

	clock.Advance(2100 * time.Millisecond)
	res := w.Resolve(clock.Now())
	assert.Len(t, res.Expired, 1, "the hazard still expires")
	assert.False(t, res.Killed)
	assert.True(t, p.Alive())
	assert.Zero(t, rec.Count(EventPlayerDied))
}

func TestResolve_HazardOutsideLethalRadius(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	// Centre 12px right of the player's centre: inside the pickup radius,
	// outside the lethal one.
	w.SpawnEffect(112, 100)

	clock.Advance(2100 * time.Millisecond)
	res := w.Resolve(clock.Now())
	assert.Len(t, res.Expired, 1)
	assert.False(t, res.Killed)
	assert.True(t, w.Player().Alive())
}

func TestResolve_AttackIsDirectionExclusive(t *testing.T) {
	w, clock, rec := newTestWorld(t)
	p := w.Player()
	right := w.SpawnEffect(140, 100) // centre (164, 124)
	left := w.SpawnEffect(60, 100)   // centre (84, 124)

	p.SetState(PlayerAttack, DirectionRight)
	res := w.Resolve(clock.Now())
	assert.Equal(t, []EntityID{right}, res.Defused)
	_, ok := w.Registry().Get(left)
	assert.True(t, ok, "the hazard behind the player survives")
	_, ok = w.Registry().Get(right)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.Count(EventEffectDefused))
}

func TestResolve_NoAttackWhenIdle(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	w.SpawnEffect(140, 100)
	w.Player().SetState(PlayerIdle, DirectionRight)

	res := w.Resolve(clock.Now())
	assert.Empty(t, res.Defused)
	assert.Equal(t, 1, w.Registry().Len())
}

func TestResolve_AttackDefusesBeforeExpiry(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	p := w.Player()
	w.SpawnEffect(100, 130) // centre (124, 154): in front when facing down, lethal radius missed anyway
	clock.Advance(2100 * time.Millisecond)

	p.SetState(PlayerAttack, DirectionDown)
	res := w.Resolve(clock.Now())
	assert.Len(t, res.Defused, 1)
	assert.Empty(t, res.Expired, "a defused hazard cannot also expire")
}

func TestResolve_PickupAcquired(t *testing.T) {
	w, clock, rec := newTestWorld(t)
	p := w.Player()
	id, ok := w.SpawnPickup(116, 116) // centre (124, 124)
	require.True(t, ok)
	require.True(t, w.PickupPresent())

	res := w.Resolve(clock.Now())
	assert.Equal(t, id, res.AcquiredPickup)
	assert.True(t, p.Invulnerable(clock.Now()))
	assert.Equal(t, clock.Now().Add(5*time.Second), p.InvulnerableUntil())
	assert.False(t, w.PickupPresent())
	assert.Equal(t, 0, w.Registry().Len())
	assert.Equal(t, 1, rec.Count(EventPickupAcquired))
}

func TestResolve_PickupOutOfReach(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	w.SpawnPickup(200, 200)

	res := w.Resolve(clock.Now())
	assert.Zero(t, res.AcquiredPickup)
	assert.True(t, w.PickupPresent())
	assert.False(t, w.Player().Invulnerable(clock.Now()))
}

func TestResolve_PickupIgnoredWhileInvulnerable(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	p := w.Player()
	p.GrantInvulnerability(clock.Now(), time.Second)
	w.SpawnPickup(116, 116)

	res := w.Resolve(clock.Now())
	assert.Zero(t, res.AcquiredPickup)
	assert.True(t, w.PickupPresent())
	assert.Equal(t, clock.Now().Add(time.Second), p.InvulnerableUntil(), "the timer is not extended")
}

func TestResolve_PickupBeforeLethality(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	w.SpawnEffect(100, 100)
	clock.Advance(2100 * time.Millisecond)
	w.SpawnPickup(116, 116)

	res := w.Resolve(clock.Now())
	assert.NotZero(t, res.AcquiredPickup)
	assert.Len(t, res.Expired, 1)
	assert.False(t, res.Killed, "the pickup collected in the same pass protects the player")
}

func TestResolve_DeadPlayerDiesOnce(t *testing.T) {
	w, clock, rec := newTestWorld(t)
	p := w.Player()
	w.SpawnEffect(100, 100)
	clock.Advance(time.Second)
	w.SpawnEffect(100, 100)

	clock.Advance(1100 * time.Millisecond)
	require.True(t, w.Resolve(clock.Now()).Killed)
	died, _ := p.DeathTime()

	clock.Advance(time.Second)
	res := w.Resolve(clock.Now())
	assert.Len(t, res.Expired, 1)
	assert.False(t, res.Killed)
	again, _ := p.DeathTime()
	assert.Equal(t, died, again)
	assert.Equal(t, 1, rec.Count(EventPlayerDied))
}

func TestResolve_DeadPlayerCannotCollectPickups(t *testing.T) {
	w, clock, _ := newTestWorld(t)
	w.Player().GameOver(clock.Now())
	w.SpawnPickup(116, 116)

	res := w.Resolve(clock.Now())
	assert.Zero(t, res.AcquiredPickup)
	assert.True(t, w.PickupPresent())
}
