package npc

import "github.com/zeusync/murker/internal/core/world"

// Idle spends every turn doing nothing.
type Idle struct{}

func (Idle) Act(w *world.World, self world.EntityID) {
	w.Narrate("%s waits", w.Describe(self))
}
