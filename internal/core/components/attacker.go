package components

import (
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/world"
)

// Attacker lets its entity strike others. Accuracy is the probability of a hit.
type Attacker struct {
	world.Base
	Accuracy float64
	Damage   int
}

func NewAttacker(accuracy float64, damage int) *Attacker {
	return &Attacker{Accuracy: accuracy, Damage: damage}
}

func (a *Attacker) Kind() world.ComponentKind { return world.KindAttacker }

// Attack swings at target. A hit is delivered to target as an Attack event,
// which its own components may still evade or absorb.
func (a *Attacker) Attack(w *world.World, target world.EntityID) {
	self := w.Describe(a.Owner())
	w.Narrate("%s attacks %s", self, w.Describe(target))
	if !w.Chance(a.Accuracy) {
		w.Narrate("%s misses", self)
		return
	}
	w.Update(target, events.Attack{Damage: a.Damage})
}

func (a *Attacker) Update(w *world.World, ev events.Event) (events.Event, bool) {
	if ia, ok := ev.(events.InitAttack); ok {
		a.Attack(w, ia.Target)
	}
	return ev, true
}
