package world

import (
	"fmt"

	"github.com/zeusync/murker/internal/core/events"
)

// EntityID identifies an entity. It is the same identity events carry.
type EntityID = events.EntityID

// ComponentKind is the key under which a component is stored on an entity.
// An entity holds at most one component per kind.
type ComponentKind uint8

// Built-in component kinds.
const (
	KindNameable ComponentKind = iota + 1
	KindPosition
	KindDestructible
	KindAttacker
	KindDefender
	KindActor
	KindPerception
)

func (k ComponentKind) String() string {
	switch k {
	case KindNameable:
		return "Nameable"
	case KindPosition:
		return "Position"
	case KindDestructible:
		return "Destructible"
	case KindAttacker:
		return "Attacker"
	case KindDefender:
		return "Defender"
	case KindActor:
		return "Actor"
	case KindPerception:
		return "Perception"
	default:
		return fmt.Sprintf("Component(%d)", uint8(k))
	}
}

// Component is a unit of state and behavior attached to exactly one entity.
//
// Update receives the current event of a dispatch fold and returns the event to
// hand to the next component, or false to stop the fold. Components embed Base,
// which supplies ownership tracking and the pass-through Update.
type Component interface {
	Kind() ComponentKind
	Update(w *World, ev events.Event) (events.Event, bool)
	Owner() EntityID
	Attached() bool
	base() *Base
}

// Named is implemented by components that give their owner a display name.
type Named interface {
	DisplayName() string
}

// Base holds the owner of a component as an id resolved through the World.
type Base struct {
	owner    EntityID
	attached bool
}

// Owner returns the id of the owning entity. It is meaningless when not Attached.
func (b *Base) Owner() EntityID {
	return b.owner
}

func (b *Base) Attached() bool {
	return b.attached
}

// Update passes every event through unchanged.
func (b *Base) Update(_ *World, ev events.Event) (events.Event, bool) {
	return ev, true
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) bind(owner EntityID) {
	b.owner = owner
	b.attached = true
}

func (b *Base) unbind() {
	b.owner = 0
	b.attached = false
}
