package components

import (
	"github.com/zeusync/murker/internal/core/geometry"
	"github.com/zeusync/murker/internal/core/world"
)

// IsAlive reports whether the entity has a Destructible with hit points left.
// Entities without Destructible cannot be fought and never count as alive.
func IsAlive(w *world.World, id world.EntityID) bool {
	d, ok := DestructibleOf(w, id)
	return ok && d.Alive()
}

// Alive filters ids down to the living ones, keeping order.
func Alive(w *world.World, ids []world.EntityID) []world.EntityID {
	out := make([]world.EntityID, 0, len(ids))
	for _, id := range ids {
		if IsAlive(w, id) {
			out = append(out, id)
		}
	}
	return out
}

func PositionOf(w *world.World, id world.EntityID) (geometry.Point, bool) {
	p, ok := world.Get[*Position](w, id, world.KindPosition)
	if !ok {
		return geometry.Point{}, false
	}
	return p.Point, true
}

func NameOf(w *world.World, id world.EntityID) (string, bool) {
	n, ok := world.Get[*Nameable](w, id, world.KindNameable)
	if !ok {
		return "", false
	}
	return n.Name, true
}

func DestructibleOf(w *world.World, id world.EntityID) (*Destructible, bool) {
	return world.Get[*Destructible](w, id, world.KindDestructible)
}

func AttackerOf(w *world.World, id world.EntityID) (*Attacker, bool) {
	return world.Get[*Attacker](w, id, world.KindAttacker)
}

func ActorOf(w *world.World, id world.EntityID) (*Actor, bool) {
	return world.Get[*Actor](w, id, world.KindActor)
}
