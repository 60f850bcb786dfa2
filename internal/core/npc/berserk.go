package npc

import (
	"fmt"

	"github.com/zeusync/murker/internal/core/components"
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/geometry"
	"github.com/zeusync/murker/internal/core/world"
	"github.com/zeusync/murker/pkg/sequence"
)

// Berserk charges the nearest living actor and attacks it once adjacent.
//
// The controlled entity must have Position and Attacker; every candidate must
// have Position. Anything else is a composition bug and panics.
type Berserk struct{}

func (Berserk) Act(w *world.World, self world.EntityID) {
	here := mustPosition(w, self)

	enemies := sequence.From(w.Filter(world.KindActor)).
		Filter(func(id world.EntityID) bool {
			return id != self && components.IsAlive(w, id)
		})

	target, ok := sequence.MinBy(enemies, func(id world.EntityID) int {
		return here.Distance(mustPosition(w, id))
	})
	if !ok {
		w.Narrate("%s sees no enemy", w.Describe(self))
		return
	}

	diff := mustPosition(w, target).Sub(here)
	switch geometry.Abs(diff.X) {
	case 0:
		panic(fmt.Sprintf("npc: %s shares %s with its target %s", w.Describe(self), here, w.Describe(target)))
	case 1:
		attacker, ok := components.AttackerOf(w, self)
		if !ok {
			panic(fmt.Sprintf("npc: %s has no Attacker", w.Describe(self)))
		}
		attacker.Attack(w, target)
	default:
		w.Update(self, events.Move{Destination: here.Add(diff.Step())})
	}
}

func mustPosition(w *world.World, id world.EntityID) geometry.Point {
	p, ok := components.PositionOf(w, id)
	if !ok {
		panic(fmt.Sprintf("npc: %s has no Position", w.Describe(id)))
	}
	return p
}
