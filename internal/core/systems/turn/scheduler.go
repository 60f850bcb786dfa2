// Package turn runs the round-robin battle loop: every live actor takes a turn
// in queue order until at most one is left standing.
package turn

import (
	"context"
	"fmt"

	"github.com/zeusync/murker/internal/core/components"
	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/observability/log"
	"github.com/zeusync/murker/internal/core/world"
	"github.com/zeusync/murker/pkg/sequence"
)

// Outcome summarizes a finished battle.
type Outcome struct {
	Victor    world.EntityID
	HasVictor bool
	Turns     int
}

type Scheduler struct {
	world    *world.World
	maxTurns int
}

type Option func(*Scheduler)

// WithMaxTurns stops a battle that is still undecided after n turns. Zero means no limit.
func WithMaxTurns(n int) Option {
	return func(s *Scheduler) {
		if n >= 0 {
			s.maxTurns = n
		}
	}
}

func New(w *world.World, opts ...Option) *Scheduler {
	s := &Scheduler{world: w}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shuffles every current actor into a queue and hands out turns until the
// queue holds at most one living entity. Entities that lose their Actor are
// dropped from the queue before the next turn.
//
// ctx is checked between turns. On cancellation or when the turn limit is hit
// Run returns the partial Outcome together with the error.
func (s *Scheduler) Run(ctx context.Context) (Outcome, error) {
	w := s.world
	logger := w.Logger()

	actors := w.Filter(world.KindActor)
	w.Rand().Shuffle(len(actors), func(i, j int) {
		actors[i], actors[j] = actors[j], actors[i]
	})
	queue := sequence.NewQueue(actors...)
	logger.Info("battle started", log.Int("actors", queue.Len()))

	var out Outcome
	for {
		alive := components.Alive(w, queue.Items())
		if len(alive) <= 1 {
			return s.finish(out, alive), nil
		}
		if err := ctx.Err(); err != nil {
			logger.Warn("battle interrupted", log.Int("turns", out.Turns), log.Error(err))
			return out, err
		}
		if s.maxTurns > 0 && out.Turns >= s.maxTurns {
			logger.Warn("battle undecided", log.Int("turns", out.Turns), log.Int("alive", len(alive)))
			return out, fmt.Errorf("%w: %d turns, %d still standing", ErrTurnLimit, out.Turns, len(alive))
		}

		current, _ := queue.PopFront()
		w.Narrate("\nTurn: %s", w.Describe(current))
		w.Update(current, events.Turn{})
		out.Turns++

		queue.Retain(func(id world.EntityID) bool {
			return w.Has(id, world.KindActor)
		})
		if w.Has(current, world.KindActor) {
			queue.PushBack(current)
		}
	}
}

func (s *Scheduler) finish(out Outcome, alive []world.EntityID) Outcome {
	w := s.world
	if len(alive) == 0 {
		w.Narrate("\nThere is no survivor.")
		w.Logger().Info("battle finished", log.Int("turns", out.Turns), log.Bool("survivor", false))
		return out
	}

	out.Victor, out.HasVictor = alive[0], true
	w.Narrate("\nThe victor is %s!", w.Describe(out.Victor))
	w.Logger().Info("battle finished",
		log.Int("turns", out.Turns),
		log.String("victor", w.Describe(out.Victor)),
	)
	return out
}
