// Package app assembles a world from configuration and runs battles in it.
package app

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/zeusync/murker/internal/config"
	"github.com/zeusync/murker/internal/core/events/bus"
	"github.com/zeusync/murker/internal/core/narration"
	"github.com/zeusync/murker/internal/core/npc"
	"github.com/zeusync/murker/internal/core/observability/log"
	"github.com/zeusync/murker/internal/core/systems/turn"
	"github.com/zeusync/murker/internal/core/world"
	"github.com/zeusync/murker/internal/roster"
)

type App struct {
	cfg      config.Config
	logger   log.Log
	bus      bus.EventBus
	registry *npc.Registry
	seed     uint64
}

func New(cfg config.Config, logger log.Log, b bus.EventBus, reg *npc.Registry) *App {
	b.AddObserver(&busObserver{logger: logger})
	return &App{cfg: cfg, logger: logger, bus: b, registry: reg, seed: config.Seed(cfg.Seed)}
}

func (a *App) Config() config.Config { return a.cfg }

// Roster returns the configured roster file, or the goblin horde when none is set.
func (a *App) Roster() (roster.Roster, error) {
	if a.cfg.Roster == "" {
		return roster.Goblins(a.cfg.Goblins), nil
	}
	return roster.LoadFile(a.cfg.Roster)
}

// Run plays one battle, narrating it to out.
func (a *App) Run(ctx context.Context, out io.Writer) (turn.Outcome, error) {
	ro, err := a.Roster()
	if err != nil {
		return turn.Outcome{}, err
	}

	sub, err := a.bus.Subscribe(narration.EventType, narration.Writer(out))
	if err != nil {
		return turn.Outcome{}, fmt.Errorf("subscribe narration: %w", err)
	}
	defer func() { _ = sub.Cancel() }()

	runID := uuid.NewString()
	logger := a.logger.With(log.String("run_id", runID))
	w := a.newWorld(0, runID, a.bus, logger)

	if _, err := ro.Spawn(w, a.registry); err != nil {
		return turn.Outcome{}, err
	}

	w.Narrate("Entities:")
	for _, id := range w.All() {
		w.Narrate("* %s", w.Describe(id))
	}

	outcome, err := turn.New(w, turn.WithMaxTurns(a.cfg.MaxTurns)).Run(ctx)
	if err != nil {
		return outcome, err
	}
	logger.Debug("narration delivered", log.Uint64("lines", a.bus.GetMetrics().Published))
	return outcome, nil
}

// newWorld builds the world for run number n of this configuration. Equal seed
// phrases give equal random streams per run number.
func (a *App) newWorld(n int, source string, b bus.EventBus, logger log.Log) *world.World {
	s1, s2 := config.RunSeeds(a.seed, n)
	return world.New(
		world.WithBus(b),
		world.WithLogger(logger),
		world.WithRand(rand.New(rand.NewPCG(s1, s2))),
		world.WithTrace(a.cfg.Trace),
		world.WithSource(source),
	)
}

// busObserver traces bus deliveries at debug level. Failures are reported by
// World.Narrate, which knows the line that was lost.
type busObserver struct {
	logger log.Log
}

func (o *busObserver) OnPublish(string, bus.Event) {}

func (o *busObserver) OnDelivered(eventType string, handlers int, err error, durationMicros int64) {
	if !o.logger.Enabled(log.LevelDebug) {
		return
	}
	o.logger.Debug("bus delivery",
		log.String("event_type", eventType),
		log.Int("handlers", handlers),
		log.Int64("duration_us", durationMicros),
		log.Bool("failed", err != nil),
	)
}
