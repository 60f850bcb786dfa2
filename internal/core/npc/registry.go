package npc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/murker/internal/core/components"
)

// Factory builds a controller from free-form parameters, as read from a roster file.
type Factory func(params map[string]any) (components.Controller, error)

// Registry maps controller names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry holding the built-in controllers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// RegisterBuiltins adds "berserk", "idle" and "sentry".
func RegisterBuiltins(r *Registry) {
	r.Register("berserk", func(params map[string]any) (components.Controller, error) {
		if err := noParams("berserk", params); err != nil {
			return nil, err
		}
		return Berserk{}, nil
	})
	r.Register("idle", func(params map[string]any) (components.Controller, error) {
		if err := noParams("idle", params); err != nil {
			return nil, err
		}
		return Idle{}, nil
	})
	r.Register("sentry", newSentry)
}

func newSentry(params map[string]any) (components.Controller, error) {
	s := Sentry{Range: 1}
	for key, v := range params {
		if key != "range" {
			return nil, fmt.Errorf("%w: sentry: unknown param %q", ErrInvalidParams, key)
		}
		n, ok := asInt(v)
		if !ok || n < 1 {
			return nil, fmt.Errorf("%w: sentry: range must be a positive integer, got %v", ErrInvalidParams, v)
		}
		s.Range = n
	}
	return s, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	r.factories[name] = factory
	r.mu.Unlock()
}

func (r *Registry) New(name string, params map[string]any) (components.Controller, error) {
	r.mu.RLock()
	f := r.factories[name]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownController, name)
	}
	return f(params)
}

// Names lists the registered controllers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func noParams(name string, params map[string]any) error {
	if len(params) > 0 {
		return fmt.Errorf("%w: %s takes no params", ErrInvalidParams, name)
	}
	return nil
}
