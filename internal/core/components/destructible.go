package components

import (
	"errors"

	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/observability/log"
	"github.com/zeusync/murker/internal/core/world"
)

// Destructible tracks hit points. 0 <= HP <= MaxHP always holds and the entity is
// alive while HP > 0.
type Destructible struct {
	world.Base
	HP    int
	MaxHP int
}

// NewDestructible starts at hp, or at full health when hp is not positive.
func NewDestructible(maxHP, hp int) *Destructible {
	if maxHP < 1 {
		maxHP = 1
	}
	if hp <= 0 || hp > maxHP {
		hp = maxHP
	}
	return &Destructible{HP: hp, MaxHP: maxHP}
}

func (d *Destructible) Kind() world.ComponentKind { return world.KindDestructible }

func (d *Destructible) Alive() bool {
	return d.HP > 0
}

// ModifyHP heals (positive amount) or damages (negative amount) the entity.
// The dead are beyond help and harm. On death the owner loses its Actor.
func (d *Destructible) ModifyHP(w *world.World, amount int) {
	if !d.Alive() || amount == 0 {
		return
	}

	d.HP = min(max(d.HP+amount, 0), d.MaxHP)

	self := w.Describe(d.Owner())
	if amount > 0 {
		w.Narrate("%s healed %d damage (hp: %d/%d)", self, amount, d.HP, d.MaxHP)
	} else {
		w.Narrate("%s took %d damage (hp: %d/%d)", self, -amount, d.HP, d.MaxHP)
	}

	if d.Alive() {
		return
	}
	w.Narrate("%s died!", self)
	if _, err := w.Detach(d.Owner(), world.KindActor); err != nil && !errors.Is(err, world.ErrComponentNotFound) {
		w.Logger().Error("detach actor of dead entity", log.String("entity", self), log.Error(err))
	}
}

func (d *Destructible) Update(w *world.World, ev events.Event) (events.Event, bool) {
	switch e := ev.(type) {
	case events.Attack:
		d.ModifyHP(w, -e.Damage)
	case events.Turn:
		if !d.Alive() {
			return nil, false
		}
	}
	return ev, true
}
