package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/murker/internal/core/events/bus"
	"github.com/zeusync/murker/internal/core/observability/log"
	"github.com/zeusync/murker/internal/core/systems/turn"
	"github.com/zeusync/murker/pkg/concurrent"
	"github.com/zeusync/murker/pkg/sequence"
)

// Tally sums up a batch of battles.
type Tally struct {
	Runs       int
	Victors    map[string]int // keyed by the victor's description
	NoSurvivor int
	Undecided  int
	Turns      int
}

type runResult struct {
	outcome   turn.Outcome
	victor    string
	undecided bool
}

// RunBatch plays cfg.Runs independent battles with at most cfg.Parallelism in
// flight. Every run has its own world and bus and stays silent; run n uses the
// same random stream as a single Run would for n = 0. Battles hitting the turn
// limit count as undecided.
func (a *App) RunBatch(ctx context.Context) (Tally, error) {
	ro, err := a.Roster()
	if err != nil {
		return Tally{}, err
	}

	runs := make([]int, a.cfg.Runs)
	for i := range runs {
		runs[i] = i
	}

	results, err := concurrent.ParallelMap(ctx, sequence.From(runs), a.cfg.Parallelism,
		func(ctx context.Context, n int) (runResult, error) {
			source := fmt.Sprintf("run-%d", n)
			w := a.newWorld(n, source, bus.New(), a.logger.With(log.Int("run", n)))
			if _, err := ro.Spawn(w, a.registry); err != nil {
				return runResult{}, err
			}
			outcome, err := turn.New(w, turn.WithMaxTurns(a.cfg.MaxTurns)).Run(ctx)
			switch {
			case errors.Is(err, turn.ErrTurnLimit):
				return runResult{outcome: outcome, undecided: true}, nil
			case err != nil:
				return runResult{}, fmt.Errorf("%s: %w", source, err)
			}
			res := runResult{outcome: outcome}
			if outcome.HasVictor {
				res.victor = w.Describe(outcome.Victor)
			}
			return res, nil
		})
	if err != nil {
		return Tally{}, err
	}

	decided := sequence.From(results).Filter(func(r runResult) bool {
		return r.outcome.HasVictor
	})
	tally := Tally{
		Runs:    len(results),
		Victors: sequence.CountBy(decided, func(r runResult) string { return r.victor }),
	}
	for _, r := range results {
		tally.Turns += r.outcome.Turns
		switch {
		case r.undecided:
			tally.Undecided++
		case !r.outcome.HasVictor:
			tally.NoSurvivor++
		}
	}

	a.logger.Info("batch finished",
		log.Int("runs", tally.Runs),
		log.Int("undecided", tally.Undecided),
		log.Int("no_survivor", tally.NoSurvivor),
		log.Int("turns", tally.Turns),
	)
	return tally, nil
}
