// Package roster describes who takes the field: hand-authored YAML rosters and
// the default goblin horde.
package roster

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/murker/internal/core/components"
	"github.com/zeusync/murker/internal/core/geometry"
	"github.com/zeusync/murker/internal/core/npc"
	"github.com/zeusync/murker/internal/core/world"
)

var ErrInvalidRoster = errors.New("invalid roster")

type Roster struct {
	Entities []Entry `yaml:"entities"`
}

// Entry describes one entity. Optional capabilities are left out when their
// section is absent.
type Entry struct {
	Name       string         `yaml:"name"`
	X          int            `yaml:"x"`
	HP         int            `yaml:"hp"`
	MaxHP      int            `yaml:"max_hp"`
	Attack     *Attack        `yaml:"attack,omitempty"`
	Evasion    *float64       `yaml:"evasion,omitempty"`
	Perception bool           `yaml:"perception"`
	Controller string         `yaml:"controller,omitempty"`
	Params     map[string]any `yaml:"params,omitempty"`
}

type Attack struct {
	Accuracy float64 `yaml:"accuracy"`
	Damage   int     `yaml:"damage"`
}

// Goblins returns n identical berserk goblins spaced three steps apart.
func Goblins(n int) Roster {
	evasion := 0.35
	r := Roster{Entities: make([]Entry, 0, n)}
	for i := range n {
		r.Entities = append(r.Entities, Entry{
			Name:       "Goblin",
			X:          3 * i,
			MaxHP:      10,
			Attack:     &Attack{Accuracy: 0.7, Damage: 2},
			Evasion:    &evasion,
			Controller: "berserk",
		})
	}
	return r
}

func Load(r io.Reader) (Roster, error) {
	var ro Roster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ro); err != nil && !errors.Is(err, io.EOF) {
		return Roster{}, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}
	if err := ro.Validate(); err != nil {
		return Roster{}, err
	}
	return ro, nil
}

func LoadFile(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Roster{}, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (r Roster) Validate() error {
	actorAt := make(map[int]int)
	for i, e := range r.Entities {
		if err := e.validate(); err != nil {
			return fmt.Errorf("%w: entity %d (%s): %v", ErrInvalidRoster, i, e.Name, err)
		}
		if e.Controller == "" {
			continue
		}
		if j, taken := actorAt[e.X]; taken {
			return fmt.Errorf("%w: entity %d (%s) shares x=%d with actor %d (%s)",
				ErrInvalidRoster, i, e.Name, e.X, j, r.Entities[j].Name)
		}
		actorAt[e.X] = i
	}
	return nil
}

func (e Entry) validate() error {
	switch {
	case e.Name == "":
		return errors.New("name is required")
	case e.MaxHP < 1:
		return errors.New("max_hp must be positive")
	case e.HP < 0 || e.HP > e.MaxHP:
		return fmt.Errorf("hp %d outside 0..%d", e.HP, e.MaxHP)
	case e.Evasion != nil && !isProbability(*e.Evasion):
		return fmt.Errorf("evasion %v outside [0, 1]", *e.Evasion)
	case e.Controller != "" && e.Attack == nil:
		return errors.New("an actor needs an attack")
	case e.Controller == "" && len(e.Params) > 0:
		return errors.New("params without controller")
	}
	if e.Attack != nil {
		if !isProbability(e.Attack.Accuracy) {
			return fmt.Errorf("accuracy %v outside [0, 1]", e.Attack.Accuracy)
		}
		if e.Attack.Damage < 0 {
			return errors.New("damage must not be negative")
		}
		if e.Controller != "" && e.Attack.Damage == 0 {
			return errors.New("an actor must deal damage")
		}
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// Spawn creates every entity of the roster in order, resolving controllers
// through reg. Actors never share a position; other entities may.
func (r Roster) Spawn(w *world.World, reg *npc.Registry) ([]world.EntityID, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	ids := make([]world.EntityID, 0, len(r.Entities))
	for i, e := range r.Entities {
		bundle, err := e.components(reg)
		if err != nil {
			return ids, fmt.Errorf("%w: entity %d (%s): %w", ErrInvalidRoster, i, e.Name, err)
		}
		id, err := w.Create(bundle...)
		if err != nil {
			return ids, fmt.Errorf("spawn %s: %w", e.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// components builds the bundle in dispatch order: Perception ahead of Attacker,
// Defender ahead of Destructible, Actor last.
func (e Entry) components(reg *npc.Registry) ([]world.Component, error) {
	bundle := []world.Component{
		components.NewNameable(e.Name),
		components.NewPosition(geometry.At(e.X)),
	}
	if e.Perception {
		bundle = append(bundle, components.NewPerception())
	}
	if e.Attack != nil {
		bundle = append(bundle, components.NewAttacker(e.Attack.Accuracy, e.Attack.Damage))
	}
	if e.Evasion != nil {
		bundle = append(bundle, components.NewDefender(*e.Evasion))
	}
	bundle = append(bundle, components.NewDestructible(e.MaxHP, e.HP))
	if e.Controller != "" {
		c, err := reg.New(e.Controller, e.Params)
		if err != nil {
			return nil, err
		}
		bundle = append(bundle, components.NewActor(c))
	}
	return bundle, nil
}
