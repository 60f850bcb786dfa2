package turn

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/murker/internal/core/components"
	"github.com/zeusync/murker/internal/core/geometry"
	"github.com/zeusync/murker/internal/core/narration"
	"github.com/zeusync/murker/internal/core/npc"
	"github.com/zeusync/murker/internal/core/world"
)

// fixedRand keeps the queue in index order and answers every roll with v.
type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64         { return f.v }
func (fixedRand) Shuffle(int, func(int, int)) {}

func goblin(w *world.World, x int, c components.Controller) world.EntityID {
	return w.MustCreate(
		components.NewNameable("Goblin"),
		components.NewPosition(geometry.At(x)),
		components.NewAttacker(1, 5),
		components.NewDefender(0),
		components.NewDestructible(10, 0),
		components.NewActor(c),
	)
}

func setup(t *testing.T) (*world.World, *narration.Recorder) {
	t.Helper()
	w := world.New(world.WithRand(fixedRand{v: 0.5}))
	rec, err := narration.Record(w.Bus())
	require.NoError(t, err)
	return w, rec
}

func TestRunDuelEndsWithVictor(t *testing.T) {
	w, rec := setup(t)
	first := goblin(w, 0, npc.Berserk{})
	second := goblin(w, 1, npc.Berserk{})

	out, err := New(w).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Outcome{Victor: first, HasVictor: true, Turns: 3}, out)
	assert.False(t, components.IsAlive(w, second))
	assert.False(t, w.Has(second, world.KindActor))
	assert.Equal(t, "\nThe victor is <Goblin id=0>!", rec.Last())
	assert.Contains(t, rec.Lines(), "\nTurn: <Goblin id=1>")
	assert.Contains(t, rec.Lines(), "<Goblin id=1> died!")
}

func TestRunSingleActorWinsWithoutTurns(t *testing.T) {
	w, rec := setup(t)
	only := goblin(w, 0, npc.Berserk{})

	out, err := New(w).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Outcome{Victor: only, HasVictor: true}, out)
	assert.Equal(t, []string{"\nThe victor is <Goblin id=0>!"}, rec.Lines())
}

func TestRunWithoutActorsHasNoSurvivor(t *testing.T) {
	w, rec := setup(t)
	w.MustCreate(components.NewNameable("Rock"))

	out, err := New(w).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, out.HasVictor)
	assert.Zero(t, out.Turns)
	assert.Equal(t, []string{"\nThere is no survivor."}, rec.Lines())
}

func TestRunAllDeadHasNoSurvivor(t *testing.T) {
	w, rec := setup(t)
	for _, x := range []int{0, 5} {
		id := goblin(w, x, npc.Berserk{})
		d, _ := components.DestructibleOf(w, id)
		d.HP = 0
	}

	out, err := New(w).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, out.HasVictor)
	assert.Equal(t, "\nThere is no survivor.", rec.Last())
}

func TestRunNeverActsOnEntityThatLostActor(t *testing.T) {
	w, _ := setup(t)
	var acted []world.EntityID
	record := func(next components.Controller) components.Controller {
		return components.ControllerFunc(func(w *world.World, self world.EntityID) {
			acted = append(acted, self)
			next.Act(w, self)
		})
	}
	a := goblin(w, 0, record(npc.Berserk{}))
	b := goblin(w, 1, record(npc.Berserk{}))
	c := goblin(w, 10, record(npc.Idle{}))

	// a kills b on turn 4; b must not act again afterwards.
	out, err := New(w, WithMaxTurns(12)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTurnLimit)
	assert.Equal(t, 12, out.Turns)
	assert.Equal(t, []world.EntityID{a, b, c, a}, acted[:4])
	for _, id := range acted[4:] {
		assert.NotEqual(t, b, id)
	}
}

func TestRunStopsAtTurnLimit(t *testing.T) {
	w, _ := setup(t)
	goblin(w, 0, npc.Idle{})
	goblin(w, 5, npc.Idle{})

	out, err := New(w, WithMaxTurns(5)).Run(context.Background())
	assert.ErrorIs(t, err, ErrTurnLimit)
	assert.Equal(t, 5, out.Turns)
	assert.False(t, out.HasVictor)
}

func TestRunHonorsCancellation(t *testing.T) {
	w, _ := setup(t)
	goblin(w, 0, npc.Idle{})
	goblin(w, 5, npc.Idle{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := New(w).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Turns)
}

func TestRunGoblinHordeTerminates(t *testing.T) {
	w := world.New(world.WithRand(rand.New(rand.NewPCG(7, 11))))
	for i := range 10 {
		w.MustCreate(
			components.NewNameable("Goblin"),
			components.NewPosition(geometry.At(3*i)),
			components.NewAttacker(0.7, 2),
			components.NewDefender(0.35),
			components.NewDestructible(10, 0),
			components.NewActor(npc.Berserk{}),
		)
	}

	out, err := New(w, WithMaxTurns(100_000)).Run(context.Background())
	require.NoError(t, err)
	require.True(t, out.HasVictor)
	assert.True(t, components.IsAlive(w, out.Victor))
	assert.Len(t, components.Alive(w, w.All()), 1)
}
