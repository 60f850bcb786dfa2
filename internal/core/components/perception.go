package components

import (
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/world"
)

// Perception turns sighting a living entity into an intent to attack it.
// It must precede Attacker on the entity for the upgraded event to be acted on.
type Perception struct {
	world.Base
}

func NewPerception() *Perception {
	return &Perception{}
}

func (p *Perception) Kind() world.ComponentKind { return world.KindPerception }

func (p *Perception) Update(w *world.World, ev events.Event) (events.Event, bool) {
	cs, ok := ev.(events.CanSee)
	if !ok || cs.Who == p.Owner() || !IsAlive(w, cs.Who) {
		return ev, true
	}
	return events.InitAttack{Target: cs.Who}, true
}
