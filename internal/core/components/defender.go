package components

import (
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/world"
)

// Defender may dodge incoming attacks with probability Evasion. An evaded
// Attack never reaches the components after it.
type Defender struct {
	world.Base
	Evasion float64
}

func NewDefender(evasion float64) *Defender {
	return &Defender{Evasion: evasion}
}

func (d *Defender) Kind() world.ComponentKind { return world.KindDefender }

func (d *Defender) Update(w *world.World, ev events.Event) (events.Event, bool) {
	if _, ok := ev.(events.Attack); !ok {
		return ev, true
	}
	self := w.Describe(d.Owner())
	if w.Chance(d.Evasion) {
		w.Narrate("%s evades the attack", self)
		return nil, false
	}
	w.Narrate("%s is hit", self)
	return ev, true
}
