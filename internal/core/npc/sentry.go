package npc

import (
	"github.com/zeusync/murker/internal/core/components"
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/world"
	"github.com/zeusync/murker/pkg/sequence"
)

// Sentry holds its ground and reports the nearest living actor within Range to
// its own entity as a sighting. What the entity does about it is up to its
// components, typically Perception followed by Attacker.
type Sentry struct {
	Range int
}

func (s Sentry) Act(w *world.World, self world.EntityID) {
	here := mustPosition(w, self)

	inRange := sequence.From(w.Filter(world.KindActor)).
		Filter(func(id world.EntityID) bool {
			return id != self && components.IsAlive(w, id) && here.Distance(mustPosition(w, id)) <= s.Range
		})

	target, ok := sequence.MinBy(inRange, func(id world.EntityID) int {
		return here.Distance(mustPosition(w, id))
	})
	if !ok {
		w.Narrate("%s keeps watch", w.Describe(self))
		return
	}
	w.Update(self, events.CanSee{Who: target})
}
