package adventure

import (
	"fmt"
	"iter"
)

// EntityRegistry owns all live world entities keyed by id. Ids are issued
// monotonically and never reused while the registry lives, including across
// Clear.
//
// Iteration walks a snapshot of the insertion order and skips entries removed
// since the snapshot was taken, so removing entities while iterating neither
// skips nor repeats the remaining live ones. Entities inserted during an
// iteration are not visited by it.
type EntityRegistry struct {
	entities map[EntityID]Entity
	order    []EntityID
	nextID   EntityID
}

// NewEntityRegistry creates an empty registry.
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{entities: make(map[EntityID]Entity)}
}

// Reserve issues a fresh id without registering anything. The player, which
// lives outside the registry, takes its id this way so ids stay unique
// across all entities.
func (r *EntityRegistry) Reserve() EntityID {
	r.nextID++
	return r.nextID
}

// Insert registers e under a newly issued id and returns it. An entity that
// was removed earlier gets a new id. Inserting a live entity panics.
func (r *EntityRegistry) Insert(e Entity) EntityID {
	b := e.base()
	if cur, ok := r.entities[b.id]; ok && cur == e {
		panic(fmt.Sprintf("adventure: %s entity already registered as %d", e.Kind(), b.id))
	}
	if b.anim == nil {
		panic(fmt.Sprintf("adventure: %s entity has no animation", e.Kind()))
	}
	b.id = r.Reserve()
	r.entities[b.id] = e
	// Iterations range over a fixed-length header and never see this append.
	r.order = append(r.order, b.id)
	return b.id
}

// Remove unregisters the entity with the given id. Removing an absent id is a
// no-op and returns false.
func (r *EntityRegistry) Remove(id EntityID) (Entity, bool) {
	e, ok := r.entities[id]
	if !ok {
		return nil, false
	}
	delete(r.entities, id)

	// Build a new order slice so that iterations in flight keep their view.
	order := make([]EntityID, 0, len(r.order))
	for _, oid := range r.order {
		if oid != id {
			order = append(order, oid)
		}
	}
	r.order = order
	return e, true
}

// Get returns the entity with the given id.
func (r *EntityRegistry) Get(id EntityID) (Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (r *EntityRegistry) Len() int {
	return len(r.entities)
}

// All yields every live entity in insertion order.
func (r *EntityRegistry) All() iter.Seq2[EntityID, Entity] {
	return func(yield func(EntityID, Entity) bool) {
		for _, id := range r.order {
			e, ok := r.entities[id]
			if !ok {
				continue
			}
			if !yield(id, e) {
				return
			}
		}
	}
}

// Renderables yields every live entity's renderable projection in insertion
// order.
func (r *EntityRegistry) Renderables() iter.Seq[Renderable] {
	return func(yield func(Renderable) bool) {
		for _, e := range r.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Effects yields the live temporary effects in insertion order.
func (r *EntityRegistry) Effects() iter.Seq[*TemporaryEffect] {
	return func(yield func(*TemporaryEffect) bool) {
		for _, e := range r.All() {
			if fx, ok := e.(*TemporaryEffect); ok {
				if !yield(fx) {
					return
				}
			}
		}
	}
}

// Prune removes every entity for which match returns true and returns them
// in insertion order. Matches are collected first and removed afterwards.
func (r *EntityRegistry) Prune(match func(Entity) bool) []Entity {
	var ids []EntityID
	for id, e := range r.All() {
		if match(e) {
			ids = append(ids, id)
		}
	}
	removed := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.Remove(id); ok {
			removed = append(removed, e)
		}
	}
	return removed
}

// Clear drops every entity. The id counter is kept so ids issued before the
// clear are never handed out again.
func (r *EntityRegistry) Clear() {
	clear(r.entities)
	r.order = nil
}
