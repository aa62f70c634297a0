package ecs

import (
	"fmt"

	"github.com/phanxgames/adventure"

	"github.com/yohamta/donburi"
)

// Score is the tally kept by a Scoreboard.
type Score struct {
	Sessions int // world setups, the first start included
	Bombs    int // hazards spawned
	Defused  int // hazards removed by an attack
	Expired  int // hazards that ran out their lifetime
	Pickups  int // pickups collected
	Deaths   int
}

// ScoreComponent stores a Score on a Donburi entity.
var ScoreComponent = donburi.NewComponentType[Score]()

// Scoreboard tallies gameplay events into a Score component.
type Scoreboard struct {
	world  donburi.World
	entity donburi.Entity
}

// NewScoreboard creates the score entity in world and subscribes it to
// GameEventType.
func NewScoreboard(world donburi.World) *Scoreboard {
	sb := &Scoreboard{world: world, entity: world.Create(ScoreComponent)}
	GameEventType.Subscribe(world, sb.handle)
	return sb
}

func (sb *Scoreboard) handle(w donburi.World, e adventure.GameEvent) {
	s := ScoreComponent.Get(w.Entry(sb.entity))
	switch e.Kind {
	case adventure.EventWorldReset:
		s.Sessions++
	case adventure.EventEffectSpawned:
		s.Bombs++
	case adventure.EventEffectDefused:
		s.Defused++
	case adventure.EventEffectExpired:
		s.Expired++
	case adventure.EventPickupAcquired:
		s.Pickups++
	case adventure.EventPlayerDied:
		s.Deaths++
	}
}

// Score returns the current tally.
func (sb *Scoreboard) Score() Score {
	return *ScoreComponent.Get(sb.world.Entry(sb.entity))
}

// String formats the tally for the HUD.
func (sb *Scoreboard) String() string {
	s := sb.Score()
	return fmt.Sprintf("Defused: %d  Pickups: %d\nDeaths: %d  Runs: %d", s.Defused, s.Pickups, s.Deaths, s.Sessions)
}
