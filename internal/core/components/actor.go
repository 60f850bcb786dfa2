package components

import (
	"fmt"

	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/world"
)

// Controller decides what an entity does with its turn.
type Controller interface {
	Act(w *world.World, self world.EntityID)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(w *world.World, self world.EntityID)

func (f ControllerFunc) Act(w *world.World, self world.EntityID) { f(w, self) }

// Actor marks an entity as taking turns and hands each Turn to its Controller.
// Build it with NewActor; an Actor without a Controller panics on its first Turn.
type Actor struct {
	world.Base
	Controller Controller
}

func NewActor(c Controller) *Actor {
	if c == nil {
		panic("components: actor requires a controller")
	}
	return &Actor{Controller: c}
}

func (a *Actor) Kind() world.ComponentKind { return world.KindActor }

func (a *Actor) Update(w *world.World, ev events.Event) (events.Event, bool) {
	if _, ok := ev.(events.Turn); ok {
		if a.Controller == nil {
			panic(fmt.Sprintf("components: %s has an actor without a controller", w.Describe(a.Owner())))
		}
		a.Controller.Act(w, a.Owner())
	}
	return ev, true
}
