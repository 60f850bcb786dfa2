package roster

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/murker/internal/core/components"
	"github.com/zeusync/murker/internal/core/geometry"
	"github.com/zeusync/murker/internal/core/npc"
	"github.com/zeusync/murker/internal/core/systems/turn"
	"github.com/zeusync/murker/internal/core/world"
)

const sample = `
entities:
  - name: Knight
    x: 0
    max_hp: 20
    attack: {accuracy: 0.9, damage: 4}
    evasion: 0.1
    controller: berserk
  - name: Scout
    x: 4
    hp: 6
    max_hp: 8
    attack: {accuracy: 0.6, damage: 2}
    perception: true
    controller: sentry
    params: {range: 5}
  - name: Barrel
    x: 9
    max_hp: 3
`

func TestGoblins(t *testing.T) {
	r := Goblins(3)
	require.Len(t, r.Entities, 3)
	require.NoError(t, r.Validate())
	for i, e := range r.Entities {
		assert.Equal(t, "Goblin", e.Name)
		assert.Equal(t, 3*i, e.X)
		assert.Equal(t, 10, e.MaxHP)
		assert.Equal(t, &Attack{Accuracy: 0.7, Damage: 2}, e.Attack)
		require.NotNil(t, e.Evasion)
		assert.Equal(t, 0.35, *e.Evasion)
		assert.Equal(t, "berserk", e.Controller)
	}
	assert.Empty(t, Goblins(0).Entities)
}

func TestSpawnGoblins(t *testing.T) {
	w := world.New()
	ids, err := Goblins(2).Spawn(w, npc.NewDefaultRegistry())
	require.NoError(t, err)
	require.Len(t, ids, 2)

	assert.Equal(t, ids, w.Filter(world.KindActor))
	kinds := func(id world.EntityID) []world.ComponentKind {
		var out []world.ComponentKind
		for _, c := range w.Components(id) {
			out = append(out, c.Kind())
		}
		return out
	}
	assert.Equal(t, []world.ComponentKind{
		world.KindNameable, world.KindPosition, world.KindAttacker,
		world.KindDefender, world.KindDestructible, world.KindActor,
	}, kinds(ids[1]))

	p, ok := components.PositionOf(w, ids[1])
	require.True(t, ok)
	assert.Equal(t, geometry.At(3), p)
	assert.Equal(t, "<Goblin id=1>", w.Describe(ids[1]))
}

func TestLoadAndSpawn(t *testing.T) {
	r, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, r.Entities, 3)

	w := world.New()
	ids, err := r.Spawn(w, npc.NewDefaultRegistry())
	require.NoError(t, err)
	require.Len(t, ids, 3)

	knight, scout, barrel := ids[0], ids[1], ids[2]
	assert.Equal(t, []world.EntityID{knight, scout}, w.Filter(world.KindActor))
	assert.Equal(t, []world.EntityID{scout}, w.Filter(world.KindPerception))
	assert.Equal(t, []world.EntityID{knight}, w.Filter(world.KindDefender))
	assert.False(t, w.Has(barrel, world.KindAttacker))

	hp, ok := components.DestructibleOf(w, scout)
	require.True(t, ok)
	assert.Equal(t, 6, hp.HP)
	assert.Equal(t, 8, hp.MaxHP)

	full, _ := components.DestructibleOf(w, knight)
	assert.Equal(t, 20, full.HP, "hp defaults to max_hp")

	actor, ok := components.ActorOf(w, scout)
	require.True(t, ok)
	assert.Equal(t, npc.Sentry{Range: 5}, actor.Controller)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "entities:\n  - name: A\n    max_hp: 1\n    armor: 3\n",
		"missing name":      "entities:\n  - max_hp: 1\n",
		"no max hp":         "entities:\n  - name: A\n",
		"hp above max":      "entities:\n  - name: A\n    max_hp: 2\n    hp: 3\n",
		"evasion range":     "entities:\n  - name: A\n    max_hp: 2\n    evasion: 1.5\n",
		"accuracy range":    "entities:\n  - name: A\n    max_hp: 2\n    attack: {accuracy: -0.1, damage: 1}\n",
		"negative damage":   "entities:\n  - name: A\n    max_hp: 2\n    attack: {accuracy: 0.5, damage: -1}\n",
		"actor sans attack": "entities:\n  - name: A\n    max_hp: 2\n    controller: idle\n",
		"orphan params":     "entities:\n  - name: A\n    max_hp: 2\n    params: {x: 1}\n",
		"harmless actor":    "entities:\n  - name: A\n    max_hp: 2\n    attack: {accuracy: 1, damage: 0}\n    controller: berserk\n",
		"actors share x": `
entities:
  - name: A
    x: 3
    max_hp: 10
    attack: {accuracy: 0.7, damage: 2}
    controller: berserk
  - name: B
    x: 3
    max_hp: 10
    attack: {accuracy: 0.7, damage: 2}
    controller: berserk
`,
		"malformed":         "entities: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidRoster)
		})
	}
}

func TestSpawnUnknownController(t *testing.T) {
	r := Roster{Entities: []Entry{
		{Name: "A", MaxHP: 3},
		{Name: "B", MaxHP: 3, Attack: &Attack{Accuracy: 1, Damage: 1}, Controller: "coward"},
	}}
	w := world.New()
	ids, err := r.Spawn(w, npc.NewDefaultRegistry())
	assert.ErrorIs(t, err, ErrInvalidRoster)
	assert.ErrorIs(t, err, npc.ErrUnknownController)
	assert.Len(t, ids, 1, "entities before the bad entry stay spawned")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, r.Entities, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestActorsOnDistinctPositionsFightToTheEnd(t *testing.T) {
	r, err := Load(strings.NewReader(`
entities:
  - name: A
    x: 3
    max_hp: 10
    attack: {accuracy: 0.7, damage: 2}
    controller: berserk
  - name: Crate
    x: 3
    max_hp: 4
  - name: B
    x: 4
    max_hp: 10
    attack: {accuracy: 0.7, damage: 2}
    controller: berserk
`))
	require.NoError(t, err, "a non-actor may share a position with an actor")

	w := world.New(world.WithRand(rand.New(rand.NewPCG(1, 2))))
	_, err = r.Spawn(w, npc.NewDefaultRegistry())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		out, err := turn.New(w, turn.WithMaxTurns(10_000)).Run(context.Background())
		require.NoError(t, err)
		assert.True(t, out.HasVictor)
	})
}
