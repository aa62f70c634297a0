package adventure

import "time"

// EventKind identifies a gameplay event.
type EventKind uint8

const (
	EventEffectSpawned  EventKind = iota // a hazard entered the world
	EventEffectDefused                   // an attack removed a hazard
	EventEffectExpired                   // a hazard's lifetime ended
	EventPickupSpawned                   // a pickup entered the world
	EventPickupAcquired                  // the player collected a pickup
	EventPlayerDied                      // the player reached GameOver
	EventWorldReset                      // world setup ran (start or restart)
)

var eventKindNames = [...]string{
	EventEffectSpawned:  "effect_spawned",
	EventEffectDefused:  "effect_defused",
	EventEffectExpired:  "effect_expired",
	EventPickupSpawned:  "pickup_spawned",
	EventPickupAcquired: "pickup_acquired",
	EventPlayerDied:     "player_died",
	EventWorldReset:     "world_reset",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// GameEvent describes something that happened in the world.
type GameEvent struct {
	Kind     EventKind
	Session  string // id of the world setup the event belongs to
	Entity   EntityID
	Position Point
	At       time.Time
}

// EventSink receives gameplay events as they happen. Emit is called from the
// frame loop and must not block.
type EventSink interface {
	Emit(e GameEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(GameEvent)

// Emit calls f(e).
func (f EventSinkFunc) Emit(e GameEvent) { f(e) }

type nopSink struct{}

func (nopSink) Emit(GameEvent) {}

// EventRecorder is an EventSink that keeps every event. Useful in tests and
// scripted runs.
type EventRecorder struct {
	Events []GameEvent
}

// Emit appends e.
func (r *EventRecorder) Emit(e GameEvent) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have the given kind.
func (r *EventRecorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
