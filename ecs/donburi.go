package ecs

import (
	"github.com/phanxgames/adventure"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for adventure gameplay events.
var GameEventType = events.NewEventType[adventure.GameEvent]()

// DonburiSink is an adventure.EventSink backed by a Donburi world.
type DonburiSink struct {
	world donburi.World
}

var _ adventure.EventSink = (*DonburiSink)(nil)

// NewDonburiSink creates a sink publishing to GameEventType in world.
// Published events are queued until Flush or events.ProcessAllEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// Emit queues e on the world.
func (s *DonburiSink) Emit(e adventure.GameEvent) {
	GameEventType.Publish(s.world, e)
}

// Flush delivers queued events to their subscribers.
func (s *DonburiSink) Flush() {
	GameEventType.ProcessEvents(s.world)
}

// World returns the backing world.
func (s *DonburiSink) World() donburi.World { return s.world }
