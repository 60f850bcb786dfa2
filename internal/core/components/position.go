package components

import (
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/geometry"
	"github.com/zeusync/murker/internal/core/world"
)

// Position places its entity on the battle line.
type Position struct {
	world.Base
	Point geometry.Point
}

func NewPosition(p geometry.Point) *Position {
	return &Position{Point: p}
}

func (p *Position) Kind() world.ComponentKind { return world.KindPosition }

func (p *Position) Update(w *world.World, ev events.Event) (events.Event, bool) {
	if mv, ok := ev.(events.Move); ok {
		from := p.Point
		p.Point = mv.Destination
		w.Narrate("%s moves %s → %s", w.Describe(p.Owner()), from, mv.Destination)
	}
	return ev, true
}
