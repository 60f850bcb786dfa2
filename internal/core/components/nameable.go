package components

import "github.com/zeusync/murker/internal/core/world"

// Nameable gives its entity a display name.
type Nameable struct {
	world.Base
	Name string
}

func NewNameable(name string) *Nameable {
	return &Nameable{Name: name}
}

func (n *Nameable) Kind() world.ComponentKind { return world.KindNameable }

func (n *Nameable) DisplayName() string { return n.Name }
