package world

import (
	"fmt"
	"math/rand/v2"

	"github.com/zeusync/murker/internal/core/events"
	"github.com/zeusync/murker/internal/core/events/bus"
	"github.com/zeusync/murker/internal/core/narration"
	"github.com/zeusync/murker/internal/core/observability/log"
)

// Rand is the source of randomness used for every probability roll and shuffle.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type entity struct {
	id    EntityID
	slots map[ComponentKind]Component
	order []ComponentKind
}

// World owns every entity, its components and the kind index.
// A World is not safe for concurrent use; independent Worlds share nothing.
type World struct {
	nextID   EntityID
	created  []EntityID
	entities map[EntityID]*entity
	index    map[ComponentKind][]EntityID

	bus    bus.EventBus
	logger log.Log
	rnd    Rand
	trace  bool
	source string
}

type Option func(*World)

// WithBus sets the bus narration is published on.
func WithBus(b bus.EventBus) Option {
	return func(w *World) {
		if b != nil {
			w.bus = b
		}
	}
}

func WithLogger(l log.Log) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithRand(r Rand) Option {
	return func(w *World) {
		if r != nil {
			w.rnd = r
		}
	}
}

// WithTrace enables a debug log line for every event delivered to a component.
func WithTrace(enabled bool) Option {
	return func(w *World) {
		w.trace = enabled
	}
}

// WithSource tags narration published by this world, e.g. with a run id.
func WithSource(source string) Option {
	return func(w *World) {
		w.source = source
	}
}

func New(opts ...Option) *World {
	w := &World{
		entities: make(map[EntityID]*entity),
		index:    make(map[ComponentKind][]EntityID),
		bus:      bus.New(),
		logger:   log.NewNop(),
		source:   "world",
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rnd == nil {
		w.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return w
}

func (w *World) Bus() bus.EventBus { return w.bus }
func (w *World) Logger() log.Log   { return w.logger }
func (w *World) Rand() Rand        { return w.rnd }

// Chance rolls the world's random source and reports success with probability p.
func (w *World) Chance(p float64) bool {
	return w.rnd.Float64() < p
}

// Create registers a new entity and attaches components in order. The bundle is
// validated first: on error no entity is created.
func (w *World) Create(components ...Component) (EntityID, error) {
	seen := make(map[ComponentKind]struct{}, len(components))
	for _, c := range components {
		if c == nil {
			return 0, ErrNilComponent
		}
		if c.Attached() {
			return 0, fmt.Errorf("create: %s: %w", c.Kind(), ErrAlreadyAttached)
		}
		if _, dup := seen[c.Kind()]; dup {
			return 0, fmt.Errorf("create: %s: %w", c.Kind(), ErrDuplicateComponent)
		}
		seen[c.Kind()] = struct{}{}
	}

	id := w.nextID
	w.nextID++
	w.entities[id] = &entity{
		id:    id,
		slots: make(map[ComponentKind]Component, len(components)),
		order: make([]ComponentKind, 0, len(components)),
	}
	w.created = append(w.created, id)

	for _, c := range components {
		if err := w.Attach(id, c); err != nil {
			return id, err
		}
	}
	return id, nil
}

// MustCreate is Create for setup code that treats a malformed bundle as a bug.
func (w *World) MustCreate(components ...Component) EntityID {
	id, err := w.Create(components...)
	if err != nil {
		panic(fmt.Sprintf("world: create entity: %v", err))
	}
	return id
}

// Attach adds c to the entity and indexes it under its kind.
func (w *World) Attach(id EntityID, c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("attach %s to %d: %w", c.Kind(), id, ErrEntityNotFound)
	}
	if c.Attached() {
		return fmt.Errorf("attach %s to %d: %w", c.Kind(), id, ErrAlreadyAttached)
	}
	kind := c.Kind()
	if _, exists := e.slots[kind]; exists {
		return fmt.Errorf("attach %s to %s: %w", kind, w.Describe(id), ErrDuplicateComponent)
	}

	c.base().bind(id)
	e.slots[kind] = c
	e.order = append(e.order, kind)
	w.index[kind] = append(w.index[kind], id)
	return nil
}

// Detach removes the component of the given kind from the entity and returns it.
func (w *World) Detach(id EntityID, kind ComponentKind) (Component, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, fmt.Errorf("detach %s from %d: %w", kind, id, ErrEntityNotFound)
	}
	c, ok := e.slots[kind]
	if !ok {
		return nil, fmt.Errorf("detach %s from %s: %w", kind, w.Describe(id), ErrComponentNotFound)
	}

	delete(e.slots, kind)
	e.order = removeFirst(e.order, kind)
	w.index[kind] = removeFirst(w.index[kind], id)
	c.base().unbind()
	return c, nil
}

// Component returns the entity's component of exactly the given kind.
func (w *World) Component(id EntityID, kind ComponentKind) (Component, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	c, ok := e.slots[kind]
	return c, ok
}

// Has reports whether the entity holds a component of the given kind.
func (w *World) Has(id EntityID, kind ComponentKind) bool {
	_, ok := w.Component(id, kind)
	return ok
}

// Get returns the entity's component of the given kind as its concrete type.
func Get[T Component](w *World, id EntityID, kind ComponentKind) (T, bool) {
	var zero T
	c, ok := w.Component(id, kind)
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Components returns the entity's components in attachment order.
func (w *World) Components(id EntityID) []Component {
	e, ok := w.entities[id]
	if !ok {
		return nil
	}
	out := make([]Component, 0, len(e.order))
	for _, k := range e.order {
		out = append(out, e.slots[k])
	}
	return out
}

// Filter returns the entities currently holding a component of the given kind,
// in attachment order. The slice is a copy: detaching while ranging over it is safe.
func (w *World) Filter(kind ComponentKind) []EntityID {
	return append([]EntityID(nil), w.index[kind]...)
}

// All returns every entity ever created, in creation order.
func (w *World) All() []EntityID {
	return append([]EntityID(nil), w.created...)
}

func (w *World) Exists(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

func (w *World) Len() int {
	return len(w.created)
}

// Describe renders an entity as "<Name id=N>", or "<Entity id=N>" when unnamed.
func (w *World) Describe(id EntityID) string {
	name := "Entity"
	if c, ok := w.Component(id, KindNameable); ok {
		if n, ok := c.(Named); ok {
			name = n.DisplayName()
		}
	}
	return fmt.Sprintf("<%s id=%d>", name, id)
}

// Update folds ev through the entity's components in attachment order.
// Each component sees the event returned by the one before it; a component
// returning false ends the fold and Update reports no event. Components
// detached during the fold are skipped.
func (w *World) Update(id EntityID, ev events.Event) (events.Event, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}

	kinds := append([]ComponentKind(nil), e.order...)
	current := ev
	for _, kind := range kinds {
		c, ok := e.slots[kind]
		if !ok {
			continue
		}
		if w.trace {
			w.logger.Debug("event delivered",
				log.Uint64("entity_id", uint64(id)),
				log.String("entity", w.Describe(id)),
				log.Stringer("event", current.Kind()),
				log.Stringer("component", kind),
			)
		}
		next, ok := c.Update(w, current)
		if !ok || next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Narrate publishes one line of story. Lines reach subscribers before Narrate returns.
func (w *World) Narrate(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if err := w.bus.Publish(bus.NewEvent(narration.EventType, w.source, line)); err != nil {
		w.logger.Warn("narration delivery failed", log.String("line", line), log.Error(err))
	}
}

func removeFirst[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}
